package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-myself-vault/internal/card"
	"github.com/MKhiriev/go-myself-vault/internal/client"
	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/internal/session"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/tui"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/internal/workers"
	"github.com/MKhiriev/go-myself-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(2)
	}
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	cfg.App.Version = info.PackageVersion(cfg.App.Version)

	log := logger.NewClientLogger("myself", cfg.App.LogPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	localStorage, err := store.NewLocalStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer localStorage.Close()

	keyChain := crypto.NewKeyChain(cfg.App.KDFIterations)
	prompter := tui.NewPrompter()

	services := service.NewServices(localStorage, keyChain, card.NewRenderer(), prompter, *cfg, log)
	v := vault.NewVault(localStorage, keyChain, log)
	sessions := session.NewManager(localStorage, v, services.ProfileService, session.NewMemoryStore(), cfg.Session, log)
	bg := workers.NewWorkers(workers.NewSessionSweeper(sessions, cfg.Session.SweepInterval, log))

	app := client.NewApp(services, v, sessions, prompter, client.NewTerminalPasswordReader(), bg, info, *cfg, log)
	if err = app.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка: %s\n", client.UserMessage(err))
		stop()
		localStorage.Close()
		os.Exit(1)
	}
}
