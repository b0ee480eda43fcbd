package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/apurva-sri/Bolio-chatWeb/config"
	httpDelivery "github.com/apurva-sri/Bolio-chatWeb/internal/delivery/http"
	messageRepository "github.com/apurva-sri/Bolio-chatWeb/internal/message/repository"
	messageUsecase "github.com/apurva-sri/Bolio-chatWeb/internal/message/usecase"
	noteRepository "github.com/apurva-sri/Bolio-chatWeb/internal/note/repository"
	"github.com/apurva-sri/Bolio-chatWeb/internal/note/scheduler"
	noteUsecase "github.com/apurva-sri/Bolio-chatWeb/internal/note/usecase"
	"github.com/apurva-sri/Bolio-chatWeb/internal/push"
	pushRepository "github.com/apurva-sri/Bolio-chatWeb/internal/push/repository"
	"github.com/apurva-sri/Bolio-chatWeb/internal/relay"
	"github.com/apurva-sri/Bolio-chatWeb/pkg/logger"
)

func main() {
	// optional .env for local development; config.yaml is the source of truth
	_ = godotenv.Load()

	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	lg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN)))
	db := bun.NewDB(sqlDB, pgdialect.New())
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		lg.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	msgRepo := messageRepository.NewMessageRepository(db, *lg)
	noteRepo := noteRepository.NewNoteRepository(db, *lg)
	subRepo := pushRepository.NewSubscriptionRepository(db, *lg)

	messages := messageUsecase.NewMessageUsecase(msgRepo, *lg, *cfg)
	notes := noteUsecase.NewNoteUsecase(noteRepo, *lg)

	notifier := push.NewNotifier(subRepo, push.NewWebPushSender(cfg.Push), *lg, cfg.Push.QueueSize, cfg.Push.Workers)
	defer notifier.Close()

	presence := relay.NewPresence()
	rooms := relay.NewRooms()
	hub := relay.NewHub(presence, rooms, messages, notifier, *lg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := scheduler.NewSweeper(noteRepo, presence, hub, notifier, cfg.Reminder.SweepInterval(), *lg)
	go sweeper.Run(ctx)

	handler := httpDelivery.NewHandler(messages, notes, subRepo, hub, cfg, *lg)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		lg.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", "err", err)
	}
}
