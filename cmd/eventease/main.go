package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/vogiaan1904/eventease/config"
	"github.com/vogiaan1904/eventease/internal/delivery/console"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/internal/service"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
	pkgLog "github.com/vogiaan1904/eventease/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dataDir       string
		envFile       string
		logLevel      string
		resetBookings bool
	)

	flagSet := pflag.NewFlagSet("eventease", pflag.ContinueOnError)
	flagSet.StringVar(&dataDir, "data-dir", "", "directory holding the store files (overrides DATA_DIR)")
	flagSet.StringVar(&envFile, "env-file", "", "load settings from this file instead of .env")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	flagSet.BoolVar(&resetBookings, "reset-bookings", false, "delete every booking before starting")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	// Flags win over the environment and env files, which never override
	// variables that are already set.
	if dataDir != "" {
		os.Setenv("DATA_DIR", dataDir)
	}
	if logLevel != "" {
		os.Setenv("LOG_LEVEL", logLevel)
	}

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	l := pkgLog.InitializeZapLogger(pkgLog.ZapConfig{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
		Output:   cfg.Log.Output,
	})
	defer l.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = pkgLog.WithContext(ctx, l.With("run_id", uuid.NewString()))

	l.Infof(ctx, "EventEase starting - data dir: %s", cfg.Storage.DataDir)

	// Stores
	userRepo := flatfile.NewUserRepository(cfg.Storage.UsersPath(), flatfile.UserRepositoryOptions{
		MaxAttempts: cfg.Ticket.MaxAttempts,
	}, l)
	eventRepo := flatfile.NewEventRepository(cfg.Storage.EventsPath(), l)
	bookingRepo := flatfile.NewBookingRepository(cfg.Storage.BookingsPath(), eventRepo, l)

	if resetBookings || cfg.Storage.ResetBookingsOnStart {
		if err := bookingRepo.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset bookings: %w", err)
		}
		l.Info(ctx, "Bookings reset on start")
	}

	// Services
	ssSvc := service.NewSessionService(cfg.Session, l)
	userSvc, err := service.NewUserService(userRepo, ssSvc, cfg.Admin, cfg.Login, l)
	if err != nil {
		return err
	}
	evSvc := service.NewEventService(eventRepo, bookingRepo, ssSvc, l)
	bkSvc := service.NewBookingService(bookingRepo, evSvc, ssSvc, l)

	ui := pkgConsole.New(os.Stdin, os.Stdout, pkgConsole.Options{
		Width:       cfg.Console.Width,
		ClearScreen: cfg.Console.ClearScreen,
	})
	h := console.NewHandler(ui, userSvc, ssSvc, evSvc, bkSvc, l)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return h.Run(gctx)
	})
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			l.Infof(ctx, "Received %s, shutting down", sig)
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stdout)
		err = nil
	}

	l.Info(ctx, "EventEase exited")
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `EventEase - register, browse and book events from the terminal.

Users, events and bookings are kept in plain text files in the data
directory. Settings are read from the environment and from .env.

Usage:
  eventease [flags]

Flags:
%s`, flagSet.FlagUsages())
}
