package main

import (
	"chat-fanout/domain/chat"
	"chat-fanout/repositories"
	"chat-fanout/services"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

var errUsage = errors.New("usage")

type app struct {
	service services.IChatService
	db      *badger.DB
	out     io.Writer
	display Display
}

type command struct {
	summary string
	run     func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"create":        {"create a conversation", (*app).create},
	"add":           {"add participants to a conversation", (*app).add},
	"remove":        {"remove participants from a conversation", (*app).remove},
	"send":          {"send a message, attaching files if any", (*app).send},
	"feed":          {"page through the messages visible to a profile", (*app).feed},
	"conversations": {"list the conversations of a profile, most recent first", (*app).conversations},
	"read":          {"mark one message as read", (*app).read},
	"read-all":      {"mark a whole conversation as read", (*app).readAll},
	"trash":         {"delete one message for a profile", (*app).trash},
	"clear":         {"delete a whole conversation for a profile", (*app).clear},
	"between":       {"find the private conversation shared by two profiles", (*app).between},
	"inspect":       {"dump the stored keys", (*app).inspect},
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

func (a *app) usage() {
	names := slices.Sorted(maps.Keys(commands))
	fmt.Fprintln(a.out, "usage: chatctl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-14s %s\n", name, commands[name].summary)
	}
}

// parse reports flag errors as usage errors
func (a *app) parse(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	var profiles profileList
	fs.Var(&profiles, "profiles", "comma separated profile ids")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	conversation, err := a.service.CreateConversation(ctx, profiles)
	if err != nil {
		return err
	}
	a.renderConversation(conversation)
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	return a.membership(ctx, "add", args, a.service.AddParticipants)
}

func (a *app) remove(ctx context.Context, args []string) error {
	return a.membership(ctx, "remove", args, a.service.RemoveParticipants)
}

func (a *app) membership(ctx context.Context, name string, args []string,
	change func(context.Context, chat.ConversationID, []chat.ProfileID) (chat.Conversation, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	conversationID := fs.Uint64("conversation", 0, "conversation id")
	var profiles profileList
	fs.Var(&profiles, "profiles", "comma separated profile ids")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	conversation, err := change(ctx, chat.ConversationID(*conversationID), profiles)
	if err != nil {
		return err
	}
	a.renderConversation(conversation)
	return nil
}

func (a *app) send(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	conversationID := fs.Uint64("conversation", 0, "conversation id")
	from := fs.Uint64("from", 0, "sender profile id")
	body := fs.String("body", "", "message body")
	messageType := fs.String("type", string(chat.TextMessage), "text, file or image")
	var files fileList
	fs.Var(&files, "file", "file to attach, repeatable")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	uploads := make([]chat.Upload, 0, len(files))
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		uploads = append(uploads, chat.Upload{Name: filepath.Base(path), Content: f})
	}

	message, err := a.service.Send(ctx, chat.PostMessageCommand{
		ConversationID: chat.ConversationID(*conversationID),
		SenderID:       chat.ProfileID(*from),
		Body:           *body,
		Type:           chat.MessageType(*messageType),
		Attachments:    uploads,
	})
	if err != nil {
		return err
	}
	a.renderMessage(message)
	return nil
}

func (a *app) feed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	conversationID := fs.Uint64("conversation", 0, "conversation id")
	profile := fs.Uint64("profile", 0, "reader profile id")
	page := fs.Int("page", chat.DefaultPage, "page number")
	perPage := fs.Int("per-page", chat.DefaultPerPage, "messages per page")
	sorting := fs.String("sort", string(chat.Ascending), "asc or desc")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	result, err := a.service.Messages(ctx, chat.GetMessagesCommand{
		ConversationID: chat.ConversationID(*conversationID),
		ProfileID:      chat.ProfileID(*profile),
		PerPage:        *perPage,
		Page:           *page,
		Sorting:        chat.Sorting(*sorting),
	})
	if err != nil {
		return err
	}
	a.renderFeed(result)
	return nil
}

func (a *app) conversations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("conversations", flag.ContinueOnError)
	profile := fs.Uint64("profile", 0, "profile id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	summaries, err := a.service.Conversations(ctx, chat.ProfileID(*profile))
	if err != nil {
		return err
	}
	a.renderSummaries(summaries)
	return nil
}

func (a *app) read(ctx context.Context, args []string) error {
	return a.perMessage(ctx, "read", args, a.service.MessageRead)
}

func (a *app) trash(ctx context.Context, args []string) error {
	return a.perMessage(ctx, "trash", args, a.service.Trash)
}

func (a *app) perMessage(ctx context.Context, name string, args []string,
	change func(context.Context, chat.MessageID, chat.ProfileID) error) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	messageID := fs.Uint64("message", 0, "message id")
	profile := fs.Uint64("profile", 0, "profile id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := change(ctx, chat.MessageID(*messageID), chat.ProfileID(*profile)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "message %d updated for profile %d\n", *messageID, *profile)
	return nil
}

func (a *app) readAll(ctx context.Context, args []string) error {
	return a.perConversation(ctx, "read-all", args, a.service.ConversationRead)
}

func (a *app) clear(ctx context.Context, args []string) error {
	return a.perConversation(ctx, "clear", args, a.service.Clear)
}

func (a *app) perConversation(ctx context.Context, name string, args []string,
	change func(context.Context, chat.ConversationID, chat.ProfileID) (int, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	conversationID := fs.Uint64("conversation", 0, "conversation id")
	profile := fs.Uint64("profile", 0, "profile id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	count, err := change(ctx, chat.ConversationID(*conversationID), chat.ProfileID(*profile))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d deliveries updated\n", count)
	return nil
}

func (a *app) between(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("between", flag.ContinueOnError)
	first := fs.Uint64("first", 0, "first profile id")
	second := fs.Uint64("second", 0, "second profile id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	conversation, err := a.service.ConversationBetweenUsers(ctx, chat.ProfileID(*first), chat.ProfileID(*second))
	if err != nil {
		return err
	}
	if conversation == nil {
		fmt.Fprintf(a.out, "profiles %d and %d share no private conversation\n", *first, *second)
		return nil
	}
	a.renderConversation(*conversation)
	return nil
}

func (a *app) inspect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	prefix := fs.String("prefix", "", "key prefix to scan, everything when empty")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	rows, err := repositories.Inspect(ctx, a.db, *prefix)
	if err != nil {
		return err
	}
	a.renderKeys(rows)
	return nil
}

// profileList parses "1,2,3"
type profileList []chat.ProfileID

func (p *profileList) String() string {
	return strings.Join(lo.Map(*p, func(id chat.ProfileID, _ int) string {
		return strconv.FormatUint(uint64(id), 10)
	}), ",")
}

func (p *profileList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id %q", part)
		}
		*p = append(*p, chat.ProfileID(id))
	}
	return nil
}

type fileList []string

func (f *fileList) String() string {
	return strings.Join(*f, ",")
}

func (f *fileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}
