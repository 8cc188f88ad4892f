// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/models"
)

func (a *App) runExport(ctx context.Context, args []string) error {
	fs := newFlagSet("export")
	allTests := fs.Bool("all-tests", false, "export every test")
	types := fs.String("types", "", "comma separated quiz types")
	diary := fs.Bool("diary", false, "export the diary")
	contacts := fs.Bool("contacts", false, "export contacts")
	profile := fs.Bool("profile", false, "export the full profile")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return ErrUsage
	}

	selection := models.Selection{
		AllTests:  *allTests,
		TestTypes: splitList(*types),
		Diary:     *diary,
		Contacts:  *contacts,
		Profile:   *profile,
	}
	if len(visited(fs)) == 0 {
		selection = models.Selection{AllTests: true, Diary: true, Contacts: true, Profile: true}
	}

	u, err := a.unlocked(ctx)
	if err != nil {
		return err
	}
	defer u.Lock()

	password, err := a.newPassword("Пароль для пакета: ")
	if err != nil {
		return err
	}

	res, err := a.services.ExportService.Export(ctx, u, selection, password)
	if err != nil {
		return err
	}

	dir := a.cfg.Export.Dir
	if dir == "" {
		dir = "."
	}
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, res.FileName)
	if err = os.WriteFile(path, res.Package, 0o600); err != nil {
		return fmt.Errorf("write export package: %w", err)
	}

	a.logger.Info().Str("func", "App.runExport").
		Int("tests", res.Summary.TestCount).
		Int("diary", res.Summary.DiaryCount).
		Int("contacts", res.Summary.ContactCount).
		Msg("package exported")
	fmt.Fprintf(a.out, "Пакет сохранён: %s\n", path)
	fmt.Fprintf(a.out, "Тестов: %d, записей дневника: %d, контактов: %d\n",
		res.Summary.TestCount, res.Summary.DiaryCount, res.Summary.ContactCount)
	return nil
}

func (a *App) runInspect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	req, err := a.readPackage(args[0])
	if err != nil {
		return err
	}

	preview, err := a.services.ImportService.Preview(ctx, req)
	if err != nil {
		return err
	}
	a.printPreview(preview)
	return nil
}

func (a *App) runImport(ctx context.Context, args []string) error {
	fs := newFlagSet("import")
	mode := fs.String("mode", models.ImportModeContact.String(), "self or contact")
	remark := fs.String("remark", "", "remark stored with a new contact")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return ErrUsage
	}

	req, err := a.readPackage(fs.Arg(0))
	if err != nil {
		return err
	}
	req.Mode = parseImportMode(*mode)
	req.Remark = *remark

	u, err := a.unlocked(ctx)
	if err != nil {
		return err
	}
	defer u.Lock()

	outcome, err := a.services.ImportService.Import(ctx, u, req)
	if err != nil {
		return err
	}

	if !outcome.Signed {
		fmt.Fprintln(a.out, "Внимание: пакет не подписан, его целостность не проверена")
	}
	switch outcome.Path {
	case models.PathSelf:
		fmt.Fprintf(a.out, "Данные восстановлены (%s): тестов добавлено %d, записей дневника %d\n",
			outcome.Resolution, outcome.TestsAdded, outcome.DiaryAdded)
		if len(outcome.ProfileSet) > 0 {
			fmt.Fprintf(a.out, "Обновлены поля профиля: %s\n", strings.Join(outcome.ProfileSet, ", "))
		}
	case models.PathContact:
		fmt.Fprintf(a.out, "Контакт %q сохранён: %s\n", outcome.ContactName, outcome.ContactID)
	}
	return nil
}

// readPackage loads a package file and asks for its password unless the
// layout carries no encryption. The package is read once and the result
// travels with the request.
func (a *App) readPackage(path string) (service.ImportRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.ImportRequest{}, fmt.Errorf("read package: %w", err)
	}

	parsed, err := a.services.ImportService.Read(data)
	if err != nil {
		return service.ImportRequest{}, err
	}

	req := service.ImportRequest{Package: data, Parsed: &parsed}
	if parsed.Signed() {
		if req.Password, err = a.passwords.ReadPassword("Пароль пакета: "); err != nil {
			return service.ImportRequest{}, err
		}
	}
	return req, nil
}

func (a *App) printPreview(p models.ImportPreview) {
	fmt.Fprintf(a.out, "Формат: %s\n", p.Format)
	if p.Signed {
		fmt.Fprintln(a.out, "Подпись: проверена")
	} else {
		fmt.Fprintln(a.out, "Подпись: отсутствует")
	}
	fmt.Fprintf(a.out, "Владелец: %s\n", dash(p.ProfileName))
	fmt.Fprintf(a.out, "Версия: %s\n", dash(p.Version))
	if p.ExportedAt > 0 {
		fmt.Fprintf(a.out, "Создан: %s\n", time.UnixMilli(p.ExportedAt).Local().Format("02.01.2006 15:04"))
	}
	fmt.Fprintf(a.out, "Тестов: %d, записей дневника: %d, контактов: %d\n", p.Tests, p.Diary, p.Contacts)
}

func parseImportMode(v string) models.ImportMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case models.ImportModeSelf.String():
		return models.ImportModeSelf
	case models.ImportModeContact.String():
		return models.ImportModeContact
	}
	return 0
}
