package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-myself-vault/internal/tui"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
)

func (a *App) runInit(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	initialized, err := a.vault.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return vault.ErrAlreadyInitialized
	}

	password, err := a.newPassword("Новый пароль: ")
	if err != nil {
		return err
	}
	u, err := a.vault.SetPassword(ctx, password)
	if err != nil {
		return err
	}
	u.Lock()

	profile, err := a.services.ProfileService.Get(ctx)
	if err != nil {
		return err
	}

	a.logger.Info().Str("func", "App.runInit").Msg("vault initialized")
	fmt.Fprintf(a.out, "Хранилище создано. Идентификатор установки: %s\n", profile.InstallationID)
	return nil
}

func (a *App) runUnlock(ctx context.Context, args []string) error {
	fs := newFlagSet("unlock")
	remember := fs.Bool("remember", false, "keep the session across runs")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	password, err := a.passwords.ReadPassword("Пароль: ")
	if err != nil {
		return err
	}
	sess, u, err := a.sessions.Start(ctx, password, *remember)
	if err != nil {
		return err
	}
	u.Lock()

	if *remember {
		fmt.Fprintf(a.out, "Сессия открыта до %s\n", sess.ExpiresAt.Local().Format("02.01.2006 15:04"))
		return nil
	}
	fmt.Fprintln(a.out, "Пароль верный. Для сохранения сессии используйте unlock -remember")
	return nil
}

func (a *App) runLogout(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := a.sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Сессия завершена")
	return nil
}

func (a *App) runPasswd(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	oldPassword, err := a.passwords.ReadPassword("Текущий пароль: ")
	if err != nil {
		return err
	}
	newPassword, err := a.newPassword("Новый пароль: ")
	if err != nil {
		return err
	}

	u, err := a.vault.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}
	u.Lock()

	if err = a.sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Пароль изменён")
	return nil
}

func (a *App) runVersion(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, tui.RenderBuildInfo(a.buildInfo))
	return nil
}
