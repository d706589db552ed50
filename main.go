package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"inkwell/config"
	"inkwell/database"
	"inkwell/site"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}

	s := site.New(db, cfg, logger)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Running on http://localhost%s", cfg.Server.Addr)
		if err := http.ListenAndServe(cfg.Server.Addr, s.Router()); err != nil {
			logger.Errorf("HTTP server stopped: %v", err)
		}
	}()

	// Block until a signal is received
	<-signals
	logger.Info("Shutting down gracefully...")

	if err := database.Close(db); err != nil {
		logger.Errorf("close database: %v", err)
	}
}
