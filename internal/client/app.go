// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/internal/session"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/internal/workers"
	"github.com/MKhiriev/go-myself-vault/models"
)

const workerStopTimeout = 2 * time.Second

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	services  *service.Services
	vault     vault.Vault
	sessions  session.Manager
	prompter  Prompter
	passwords PasswordReader
	workers   *workers.Workers
	buildInfo models.AppBuildInfo
	cfg       config.StructuredConfig
	out       io.Writer
	commands  map[string]command
	logger    *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp returns the CLI application. w may be nil when no background work
// is wanted.
func NewApp(
	services *service.Services,
	v vault.Vault,
	sessions session.Manager,
	prompter Prompter,
	passwords PasswordReader,
	w *workers.Workers,
	buildInfo models.AppBuildInfo,
	cfg config.StructuredConfig,
	log *logger.Logger,
) *App {
	a := &App{
		services:  services,
		vault:     v,
		sessions:  sessions,
		prompter:  prompter,
		passwords: passwords,
		workers:   w,
		buildInfo: buildInfo,
		cfg:       cfg,
		out:       os.Stdout,
		logger:    log,
	}
	a.commands = map[string]command{
		"init":     {"init", a.runInit},
		"unlock":   {"unlock [-remember]", a.runUnlock},
		"logout":   {"logout", a.runLogout},
		"passwd":   {"passwd", a.runPasswd},
		"profile":  {"profile [set -name N -gender G -birthday YYYY-MM-DD -contact C -bio B]", a.runProfile},
		"tests":    {"tests add -type T [-result JSON] [-analysis A] | tests list [-type T1,T2]", a.runTests},
		"diary":    {"diary add [-title T] [-mood M] TEXT | diary list | diary import FILE", a.runDiary},
		"export":   {"export [-all-tests] [-types T1,T2] [-diary] [-contacts] [-profile]", a.runExport},
		"inspect":  {"inspect FILE", a.runInspect},
		"import":   {"import [-mode self|contact] FILE", a.runImport},
		"contacts": {"contacts list | show ID | remark ID TEXT | delete [-yes] ID", a.runContacts},
		"version":  {"version", a.runVersion},
	}
	return a
}

// SetOutput redirects command output, which goes to stdout by default.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.printUsage()
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	bgCtx, stop := context.WithCancel(ctx)
	defer a.stopWorkers(stop)
	if a.workers != nil {
		a.workers.Run(bgCtx)
	}

	if err := cmd.run(ctx, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(a.out, "использование: myself %s\n", cmd.usage)
		}
		a.logger.Err(err).Str("func", "App.Run").Str("command", args[0]).Msg("command failed")
		return err
	}
	return nil
}

func (a *App) stopWorkers(stop context.CancelFunc) {
	stop()
	if a.workers == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), workerStopTimeout)
	defer cancel()
	if err := a.workers.Wait(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.stopWorkers").Msg("background workers did not stop in time")
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "использование: myself [флаги] КОМАНДА [аргументы]")
	fmt.Fprintln(a.out)
	for _, name := range []string{"init", "unlock", "logout", "passwd", "profile", "tests", "diary", "export", "inspect", "import", "contacts", "version"} {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
}

// unlocked resumes the current session or asks for the vault password and
// opens a session that lives as long as the process.
func (a *App) unlocked(ctx context.Context) (*vault.Unlocked, error) {
	_, u, err := a.sessions.Resume(ctx)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, session.ErrSessionNotFound) &&
		!errors.Is(err, session.ErrSessionExpired) &&
		!errors.Is(err, session.ErrSessionInvalid) {
		return nil, err
	}

	password, err := a.passwords.ReadPassword("Пароль: ")
	if err != nil {
		return nil, err
	}
	_, u, err = a.sessions.Start(ctx, password, false)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// newPassword reads a password twice and checks both entries match.
func (a *App) newPassword(prompt string) (string, error) {
	first, err := a.passwords.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", vault.ErrEmptyPassword
	}
	second, err := a.passwords.ReadPassword("Повторите пароль: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}
