package main

import (
	"bytes"
	"chat-fanout/errors"
	"chat-fanout/internal"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, censored ...string) (*app, *bytes.Buffer) {
	return newTestAppWith(t, func(*internal.Config) {}, censored...)
}

func newTestAppWith(t *testing.T, configure func(*internal.Config), censored ...string) (*app, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	config := internal.Config{
		BadgerFilepath:       filepath.Join(dir, "badger"),
		BufferSize:           16,
		SinkTimeout:          time.Second,
		RestartInterval:      10 * time.Millisecond,
		UploadDir:            filepath.Join(dir, "uploads"),
		MaxUploadSize:        1 << 20,
		MaxContentLength:     512,
		SequenceBandwidth:    10,
		CensoredWords:        censored,
		CharReplacement:      "*",
		MonitorInterval:      time.Second,
		LowCapacityThreshold: 80,
	}
	configure(&config)
	out := &bytes.Buffer{}
	a, closeApp, err := open(context.Background(), config,
		Display{TimeFormat: time.RFC3339}, logs.GetLoggerFromLevel(slog.LevelError), out)
	require.NoError(t, err)
	t.Cleanup(closeApp)
	return a, out
}

func TestChatctl_Create_Send_Feed(t *testing.T) {
	req := require.New(t)
	a, out := newTestApp(t)
	ctx := context.Background()

	req.NoError(a.dispatch(ctx, []string{"create", "-profiles", "1,2"}))
	req.Contains(out.String(), "true")

	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"send", "-conversation", "1", "-from", "1", "-body", "hello there"}))
	req.Contains(out.String(), "hello there")

	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"feed", "-conversation", "1", "-profile", "2"}))
	req.Contains(out.String(), "hello there")
	req.Contains(out.String(), "page 1/1, 1 messages")

	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"read-all", "-conversation", "1", "-profile", "2"}))
	req.Equal("1 deliveries updated\n", out.String())

	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"inspect", "-prefix", "dlv:"}))
	req.Contains(out.String(), "2 keys")
}

func TestChatctl_Send_Attachment(t *testing.T) {
	req := require.New(t)
	a, out := newTestApp(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "report.txt")
	req.NoError(os.WriteFile(path, []byte("quarterly report"), 0o644))

	req.NoError(a.dispatch(ctx, []string{"create", "-profiles", "1,2"}))
	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"send", "-conversation", "1", "-from", "2", "-type", "file", "-file", path}))
	req.Contains(out.String(), "comments/2/")
	req.Contains(out.String(), ".txt")
}

func TestChatctl_Censors_Configured_Words(t *testing.T) {
	req := require.New(t)
	a, out := newTestApp(t, "scam")
	ctx := context.Background()

	req.NoError(a.dispatch(ctx, []string{"create", "-profiles", "1,2"}))
	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"send", "-conversation", "1", "-from", "1", "-body", "this is a scam"}))
	req.Contains(out.String(), "this is a ****")
}

func TestChatctl_Censors_Words_Of_Censored_Dir(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	req.NoError(os.WriteFile(filepath.Join(dir, "en.txt"), []byte("phishing\n"), 0o644))
	a, out := newTestAppWith(t, func(config *internal.Config) { config.CensoredDir = dir }, "scam")
	ctx := context.Background()

	req.NoError(a.dispatch(ctx, []string{"create", "-profiles", "1,2"}))
	out.Reset()
	req.NoError(a.dispatch(ctx, []string{"send", "-conversation", "1", "-from", "1", "-body", "scam and phishing"}))
	req.Contains(out.String(), "**** and ********")
}

func TestChatctl_Between_Without_Shared_Conversation(t *testing.T) {
	req := require.New(t)
	a, out := newTestApp(t)

	req.NoError(a.dispatch(context.Background(), []string{"between", "-first", "1", "-second", "2"}))
	req.Equal("profiles 1 and 2 share no private conversation\n", out.String())
}

func TestChatctl_Errors(t *testing.T) {
	req := require.New(t)
	a, _ := newTestApp(t)
	ctx := context.Background()

	req.ErrorIs(a.dispatch(ctx, nil), errUsage)
	req.ErrorIs(a.dispatch(ctx, []string{"shout"}), errUsage)
	req.ErrorIs(a.dispatch(ctx, []string{"create", "-profiles", "one"}), errUsage)
	req.ErrorIs(a.dispatch(ctx, []string{"feed", "-conversation", "9", "-profile", "1"}), errors.ErrConversationNotFound)
	req.ErrorIs(a.dispatch(ctx, []string{"trash", "-message", "9", "-profile", "1"}), errors.ErrDeliveryNotFound)
}

func TestProfileList(t *testing.T) {
	req := require.New(t)
	var profiles profileList

	req.NoError(profiles.Set("3, 1,,2"))
	req.Equal("3,1,2", profiles.String())
	req.Error(profiles.Set("x"))
}
