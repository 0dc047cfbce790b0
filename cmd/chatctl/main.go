// Command chatctl drives a local chat store from the shell.
//
//	chatctl create -profiles 1,2
//	chatctl send -conversation 1 -from 1 -body "hello"
//	chatctl feed -conversation 1 -profile 2
package main

import (
	"chat-fanout/domain/event"
	"chat-fanout/internal"
	"chat-fanout/moderation"
	"chat-fanout/repositories"
	"chat-fanout/runtime"
	"chat-fanout/runtime/workers"
	"chat-fanout/services"
	"chat-fanout/sink"
	"chat-fanout/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
	exitUsage   = 64
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "chatctl: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every deferred cleanup ahead of os.Exit
func run(args []string) (int, error) {
	_ = godotenv.Load()
	config, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	display, err := LoadDisplay()
	if err != nil {
		return exitConfig, fmt.Errorf("display config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, closeApp, err := open(ctx, config, display, log, os.Stdout)
	if err != nil {
		return exitRuntime, err
	}
	defer closeApp()

	if err = app.dispatch(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage, err
		}
		return exitRuntime, err
	}
	return exitOK, nil
}

// open wires the store, the engine and the event pipeline.
// The returned func stops the workers once pending events are drained, then closes the store.
func open(ctx context.Context, config internal.Config, display Display, log *slog.Logger, out io.Writer) (*app, func(), error) {
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return nil, nil, err
	}

	db, err := badger.Open(badgerOptions(ctx, config, log))
	if err != nil {
		return nil, nil, fmt.Errorf("database opening failed: %w", err)
	}
	sequences, err := repositories.NewSequences(db, config.SequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	publisher := runtime.NewChannelPublisher(log, config.BufferSize)
	messages := repositories.NewMessageRepository(db, log, sequences)
	engine := runtime.NewEngine(log, messages,
		storage.NewDiskStore(config.UploadDir, config.MaxUploadSize, log),
		publisher, config.MaxContentLength)
	if config.Moderated() {
		sanitizer, err := newSanitizer(config, charReplacement, log)
		if err != nil {
			_ = sequences.Release()
			_ = db.Close()
			return nil, nil, err
		}
		engine.WithSanitizer(sanitizer)
	}

	service := services.NewChatService(log,
		repositories.NewConversationRepository(db, log, sequences),
		messages,
		repositories.NewDeliveryRepository(db, log),
		engine,
	)

	counter := event.NewCounter()
	supervisor := workers.NewSupervisor(log, config.RestartInterval).WithPublisher(publisher)
	supervisor.Add(workers.NewEventFanout(log, publisher.Events(), config.SinkTimeout,
		sink.NewLogSink(log),
		event.NewMessageSentHandler(log, counter),
	))
	supervisor.Add(workers.NewBacklogMonitor(log, "events", publisher, config.MonitorInterval, config.LowCapacityThreshold))
	workerCtx, stopWorkers := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		supervisor.Run(workerCtx)
		close(done)
	}()

	closeApp := func() {
		stopWorkers()
		<-done
		log.Debug("Events handled",
			"messages", counter.Get(event.MessageWasSentType),
			"deliveries", counter.Get(event.DeliveriesType))
		if err := sequences.Release(); err != nil {
			log.Warn("Sequences release failed", "error", err)
		}
		log.Debug("Closing BadgerDB...")
		_ = db.Close()
	}
	return &app{service: service, db: db, out: out, display: display}, closeApp, nil
}

// newSanitizer merges the inline censored words with the word files of CENSORED_DIR
func newSanitizer(config internal.Config, charReplacement rune, log *slog.Logger) (*moderation.Sanitizer, error) {
	words := config.CensoredWords
	if config.CensoredDir != "" {
		dictionary, err := moderation.LoadDictionary(os.DirFS(config.CensoredDir), ".")
		if err != nil {
			return nil, fmt.Errorf("censored words loading failed: %w", err)
		}
		log.Debug("Censored files loaded", "languages", strings.Join(dictionary.Languages, ","), "words", len(dictionary.Words))
		words = append(slices.Clone(words), dictionary.Words...)
	}
	return moderation.NewSanitizer(words, charReplacement, log)
}

func badgerOptions(ctx context.Context, config internal.Config, log *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if log.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
