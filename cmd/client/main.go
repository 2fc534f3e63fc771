package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/platesync/internal/client/api"
	"github.com/iudanet/platesync/internal/client/auth"
	"github.com/iudanet/platesync/internal/client/cli"
	"github.com/iudanet/platesync/internal/client/iocli"
	"github.com/iudanet/platesync/internal/client/storage/boltdb"
	"github.com/iudanet/platesync/internal/client/syncer"
	"github.com/iudanet/platesync/internal/client/thumbcache"
	"github.com/iudanet/platesync/internal/conflict"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "platesync-client.db", "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	io := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(io, nil, nil, nil, nil).PrintUsage()
		os.Exit(1)
	}

	// Логи клиента уходят в stderr, чтобы не мешаться с выводом команд
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, boltStorage, logger)
	engine := syncer.NewEngine(apiClient, boltStorage, boltStorage, conflict.NewLWW(), logger)

	cache, err := thumbcache.New(ctx, boltStorage, thumbcache.DefaultConfig(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize thumbnail cache: %v\n", err)
		os.Exit(1)
	}

	// Элементы, застрявшие в промежуточных статусах после падения
	// процесса, возвращаются в рабочее состояние до первой команды
	if _, err := engine.Recover(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to recover sync queue: %v\n", err)
		os.Exit(1)
	}

	c := cli.New(io, authService, engine, boltStorage, cache)

	if err := c.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("PlateSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
