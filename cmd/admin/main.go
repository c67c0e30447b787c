package main

import (
	"fmt"
	"log"
	netmail "net/mail"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"oalass-backend/internal/config"
	"oalass-backend/internal/infrastructure/db"
	"oalass-backend/internal/infrastructure/logging"
	"oalass-backend/internal/infrastructure/mail"
	"oalass-backend/internal/notify"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	cli := &commandLine{
		openDB:   func() (*gorm.DB, error) { return db.OpenGorm(cfg.MySQLDSN(), false) },
		log:      logger,
		notifier: notifier,
	}
	if err := cli.root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newNotifier sends synchronously; the process exits right after the command.
func newNotifier(cfg *config.Config, log *zap.Logger) (*notify.Service, error) {
	from := netmail.Address{Name: cfg.MailFromName, Address: cfg.MailFrom}
	var m mail.Mailer = mail.NewConsoleMailer(from, log)
	if cfg.MailDriver == "sendgrid" {
		m = mail.NewSendgridMailer(cfg.SendgridAPIKey, from)
	}
	return notify.New(m, log, notify.Options{AppName: "OALASS", FrontendBaseURL: cfg.FrontendBaseURL})
}
