package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/shanehull/ticketwatch/internal/config"
	"github.com/shanehull/ticketwatch/internal/logging"
	"github.com/shanehull/ticketwatch/internal/monitor"
	"github.com/shanehull/ticketwatch/internal/notify"
	"github.com/shanehull/ticketwatch/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Fatal error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	clock := clockwork.NewRealClock()
	policy := notify.Policy{
		Repeat:   cfg.NumOfEmailsToSend,
		Interval: cfg.SendInterval(),
	}

	email := notify.NewEmailNotifier(notify.EmailConfig{
		SMTPHost:   cfg.SMTPHost,
		SMTPPort:   cfg.SMTPPort,
		User:       cfg.EmailUser,
		Pass:       cfg.EmailPass,
		Recipients: cfg.Recipients(),
		PageURL:    cfg.TicketsPageURL,
	}, policy, clock)

	telegram := notify.NewTelegramNotifier(notify.TelegramConfig{
		Usernames: cfg.Usernames(),
		PageURL:   cfg.TicketsPageURL,
	}, policy, clock)

	mon := monitor.New(monitor.Config{
		Fetcher:    scrape.NewPageFetcher(cfg.TicketsPageURL),
		Dispatcher: notify.NewDispatcher(email, telegram),
		Clock:      clock,
		PollDelay:  cfg.PollDelay(),
	})

	slog.Info("Starting ticket watcher",
		"page_url", cfg.TicketsPageURL,
		"poll_delay", cfg.PollDelay(),
		"repeat", policy.Repeat,
		"interval", policy.Interval,
	)

	if err := mon.Run(context.Background()); err != nil {
		slog.Error("Monitor stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Notifications sent, exiting")
}
