package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/database"
	queueadapter "github.com/D-matsu-portfolio/matching-board/internal/infrastructure/queue/adapter"
	notiftask "github.com/D-matsu-portfolio/matching-board/internal/pkg/notification/application/task"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	srv, err := queueadapter.NewAsynqServer()
	if err != nil {
		log.Fatalf("failed to create queue server: %v", err)
	}

	notiftask.RegisterNotificationTasks(srv, pool)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("worker started")
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("worker stopped with error: %v", err)
	}
	log.Println("worker stopped")
}
