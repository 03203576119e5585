package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aseptimu/keyed-store/internal/app/config"
	handlers "github.com/aseptimu/keyed-store/internal/app/handlers/http"
	"github.com/aseptimu/keyed-store/internal/app/logger"
	server "github.com/aseptimu/keyed-store/internal/app/server/http"
	"github.com/aseptimu/keyed-store/internal/app/service"
	"github.com/aseptimu/keyed-store/internal/app/store"
)

var defaults = config.Defaults{
	ServerAddress: "localhost:8081",
	DSN:           "sqlite://data/todo.db",
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		log.Fatalf("todo: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.NewConfig("todo", args, defaults)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open[int64](ctx, store.Options{DSN: cfg.DSN, QueryTimeout: cfg.QueryTimeout}, service.ItemSchema, sugar)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer st.Close()

	todoService := service.NewTodoService(st, sugar)
	h := handlers.NewTodo(todoService, st, sugar)

	return server.NewServer(cfg.ServerAddress, sugar, h).Run(ctx)
}
