package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pedrosantos/grana/internal/account"
	accountStore "github.com/pedrosantos/grana/internal/account/store"
	"github.com/pedrosantos/grana/internal/config"
	"github.com/pedrosantos/grana/internal/database"
	granaHttp "github.com/pedrosantos/grana/internal/http"
	accountHandler "github.com/pedrosantos/grana/internal/http/account"
	projectionHandler "github.com/pedrosantos/grana/internal/http/projection"
	recurrenceHandler "github.com/pedrosantos/grana/internal/http/recurrence"
	txHandler "github.com/pedrosantos/grana/internal/http/transaction"
	"github.com/pedrosantos/grana/internal/projection"
	"github.com/pedrosantos/grana/internal/recurrence"
	recurrenceStore "github.com/pedrosantos/grana/internal/recurrence/store"
	"github.com/pedrosantos/grana/internal/transaction"
	txStore "github.com/pedrosantos/grana/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		accountRepo    = accountStore.New(db)
		txRepo         = txStore.New(db)
		recurrenceRepo = recurrenceStore.New(db)
	)

	var (
		accountService     = account.NewService(accountRepo)
		transactionService = transaction.NewService(txRepo)
		recurrenceService  = recurrence.NewService(recurrenceRepo)
		projectionService  = projection.NewService(
			projection.NewStoreSource(accountRepo, txRepo, recurrenceRepo),
		)
	)

	var (
		accountH     = accountHandler.NewHandler(accountService)
		transactionH = txHandler.NewHandler(transactionService)
		recurrenceH  = recurrenceHandler.NewHandler(recurrenceService)
		projectionH  = projectionHandler.NewHandler(projectionService)
	)

	router := granaHttp.New(granaHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, accountH, transactionH, recurrenceH, projectionH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
