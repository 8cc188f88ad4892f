package client

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-myself-vault/internal/card"
	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/mock"
	"github.com/MKhiriev/go-myself-vault/internal/pack"
	"github.com/MKhiriev/go-myself-vault/internal/service"
	"github.com/MKhiriev/go-myself-vault/internal/session"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/internal/workers"
	"github.com/MKhiriev/go-myself-vault/models"
)

const (
	vaultPW   = "vault-pw"
	packagePW = "package-pw"
)

type testApp struct {
	*App
	out       *bytes.Buffer
	passwords *mock.MockPasswordReader
	prompter  *mock.MockPrompter
	exportDir string
}

func newTestStorage(t *testing.T) *store.LocalStorages {
	t.Helper()
	s, err := store.NewLocalStorages(context.Background(), config.DB{DSN: filepath.Join(t.TempDir(), "myself.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestApp(t *testing.T, s *store.LocalStorages) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := config.StructuredConfig{
		App:     config.App{Version: "1.0.0"},
		Session: config.Session{ShortTTL: time.Hour, LongTTL: 24 * time.Hour},
		Export:  config.Export{Dir: t.TempDir()},
	}
	kc := crypto.NewKeyChain(crypto.KDFIterations)
	services := service.NewServices(s, kc, card.NewRenderer(), nil, cfg, logger.Nop())
	v := vault.NewVault(s, kc, logger.Nop())
	sessions := session.NewManager(s, v, services.ProfileService, session.NewMemoryStore(), cfg.Session, logger.Nop())

	ta := &testApp{
		out:       &bytes.Buffer{},
		passwords: mock.NewMockPasswordReader(ctrl),
		prompter:  mock.NewMockPrompter(ctrl),
		exportDir: cfg.Export.Dir,
	}
	ta.App = NewApp(services, v, sessions, ta.prompter, ta.passwords, nil, models.NewAppBuildInfo("1.0.0", "", ""), cfg, logger.Nop())
	ta.SetOutput(ta.out)
	return ta
}

func (a *testApp) run(t *testing.T, args ...string) string {
	t.Helper()
	a.out.Reset()
	require.NoError(t, a.Run(context.Background(), args))
	return a.out.String()
}

func (a *testApp) init(t *testing.T) {
	t.Helper()
	a.passwords.EXPECT().ReadPassword("Новый пароль: ").Return(vaultPW, nil)
	a.passwords.EXPECT().ReadPassword("Повторите пароль: ").Return(vaultPW, nil)
	a.run(t, "init")
}

func (a *testApp) allowVaultPassword() {
	a.passwords.EXPECT().ReadPassword("Пароль: ").Return(vaultPW, nil).AnyTimes()
}

func (a *testApp) export(t *testing.T, args ...string) string {
	t.Helper()
	a.allowVaultPassword()
	a.passwords.EXPECT().ReadPassword("Пароль для пакета: ").Return(packagePW, nil)
	a.passwords.EXPECT().ReadPassword("Повторите пароль: ").Return(packagePW, nil)
	a.run(t, append([]string{"export"}, args...)...)

	entries, err := os.ReadDir(a.exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return filepath.Join(a.exportDir, entries[0].Name())
}

func newAlice(t *testing.T) (*testApp, string) {
	t.Helper()
	alice := newTestApp(t, newTestStorage(t))
	alice.init(t)
	alice.run(t, "profile", "set", "-name", "Alice", "-birthday", "1990-01-01")
	alice.run(t, "tests", "add", "-type", "big5", "-result", `{"o":0.7}`)
	alice.allowVaultPassword()
	alice.run(t, "diary", "add", "-title", "first", "secret", "thoughts")
	return alice, alice.export(t)
}

func TestApp_Usage(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))

	out := a.run(t)
	assert.Contains(t, out, "использование")
	assert.Contains(t, out, "import [-mode self|contact] FILE")

	err := a.Run(context.Background(), []string{"frobnicate"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestApp_Init(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, newTestStorage(t))

	a.passwords.EXPECT().ReadPassword("Новый пароль: ").Return("one", nil)
	a.passwords.EXPECT().ReadPassword("Повторите пароль: ").Return("two", nil)
	assert.ErrorIs(t, a.Run(ctx, []string{"init"}), ErrPasswordMismatch)

	a.init(t)
	assert.Contains(t, a.out.String(), "Идентификатор установки")

	assert.ErrorIs(t, a.Run(ctx, []string{"init"}), vault.ErrAlreadyInitialized)
}

func TestApp_Profile(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))

	a.run(t, "profile", "set", "-name", "  Alice  ", "-bio", "hello")
	out := a.run(t, "profile")

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "Пол:")

	err := a.Run(context.Background(), []string{"profile", "set"})
	assert.ErrorIs(t, err, ErrUsage)
	assert.ErrorIs(t, a.Run(context.Background(), []string{"profile", "set", "-name", " "}), service.ErrMissingIdentityAnchor)
}

func TestApp_SessionIsReusedWithinProcess(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	a.init(t)

	a.passwords.EXPECT().ReadPassword("Пароль: ").Return(vaultPW, nil).Times(1)
	a.run(t, "diary", "add", "dear", "diary")
	out := a.run(t, "diary", "list")

	assert.Contains(t, out, "dear diary")
}

func TestApp_WrongVaultPassword(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	a.init(t)

	a.passwords.EXPECT().ReadPassword("Пароль: ").Return("nope", nil)
	err := a.Run(context.Background(), []string{"diary", "list"})

	assert.ErrorIs(t, err, vault.ErrWrongPassword)
}

func TestApp_RememberedSessionAndLogout(t *testing.T) {
	s := newTestStorage(t)

	first := newTestApp(t, s)
	first.init(t)
	first.passwords.EXPECT().ReadPassword("Пароль: ").Return(vaultPW, nil)
	assert.Contains(t, first.run(t, "unlock", "-remember"), "Сессия открыта")
	first.run(t, "diary", "add", "remembered")

	second := newTestApp(t, s)
	assert.Contains(t, second.run(t, "diary", "list"), "remembered")
	second.run(t, "logout")

	third := newTestApp(t, s)
	third.passwords.EXPECT().ReadPassword("Пароль: ").Return(vaultPW, nil).Times(1)
	assert.Contains(t, third.run(t, "diary", "list"), "remembered")
}

func TestApp_ChangePassword(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	a.init(t)
	a.passwords.EXPECT().ReadPassword("Пароль: ").Return(vaultPW, nil)
	a.run(t, "diary", "add", "kept")

	a.passwords.EXPECT().ReadPassword("Текущий пароль: ").Return(vaultPW, nil)
	a.passwords.EXPECT().ReadPassword("Новый пароль: ").Return("new-pw", nil)
	a.passwords.EXPECT().ReadPassword("Повторите пароль: ").Return("new-pw", nil)
	a.run(t, "passwd")

	a.passwords.EXPECT().ReadPassword("Пароль: ").Return("new-pw", nil)
	assert.Contains(t, a.run(t, "diary", "list"), "kept")
}

func TestApp_TestsAddAndList(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))

	a.run(t, "tests", "add", "-type", "big5")
	a.run(t, "tests", "add", "-type", "mbti", "-result", `{"type":"INTJ"}`)

	out := a.run(t, "tests", "list", "-type", "mbti")
	assert.Contains(t, out, "mbti")
	assert.NotContains(t, out, "big5")

	err := a.Run(context.Background(), []string{"tests", "add", "-type", "x", "-result", "{"})
	assert.ErrorIs(t, err, ErrUsage)
}

func TestApp_ExportRequiresName(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	a.init(t)
	a.allowVaultPassword()
	a.passwords.EXPECT().ReadPassword("Пароль для пакета: ").Return(packagePW, nil)
	a.passwords.EXPECT().ReadPassword("Повторите пароль: ").Return(packagePW, nil)

	err := a.Run(context.Background(), []string{"export"})
	assert.ErrorIs(t, err, service.ErrMissingIdentityAnchor)
}

func TestApp_InspectAndSelfRestore(t *testing.T) {
	_, pkg := newAlice(t)

	device := newTestApp(t, newTestStorage(t))
	device.init(t)

	device.passwords.EXPECT().ReadPassword("Пароль пакета: ").Return(packagePW, nil).Times(2)
	out := device.run(t, "inspect", pkg)
	assert.Contains(t, out, "Владелец: Alice")
	assert.Contains(t, out, "Подпись: проверена")
	assert.Contains(t, out, "Тестов: 1, записей дневника: 1")

	device.allowVaultPassword()
	out = device.run(t, "import", "-mode", "self", pkg)
	assert.Contains(t, out, "Данные восстановлены")
	assert.NotContains(t, out, "не подписан")

	assert.Contains(t, device.run(t, "profile"), "1990-01-01")
	assert.Contains(t, device.run(t, "diary", "list"), "secret thoughts")
	assert.Contains(t, device.run(t, "tests", "list"), "big5")
}

func TestApp_ImportWrongPackagePassword(t *testing.T) {
	_, pkg := newAlice(t)

	device := newTestApp(t, newTestStorage(t))
	device.init(t)
	device.allowVaultPassword()
	device.passwords.EXPECT().ReadPassword("Пароль пакета: ").Return("guess", nil)

	err := device.Run(context.Background(), []string{"import", "-mode", "self", pkg})
	require.ErrorIs(t, err, crypto.ErrTamperedOrWrongPassword)
	assert.Contains(t, UserMessage(err), "неверный пароль или файл был изменён")
}

func TestApp_ImportForeignFile(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	err := a.Run(context.Background(), []string{"import", path})
	assert.ErrorIs(t, err, pack.ErrInvalidFormat)
}

func TestApp_ContactImportAndDelete(t *testing.T) {
	ctx := context.Background()
	_, pkg := newAlice(t)

	bob := newTestApp(t, newTestStorage(t))
	bob.init(t)
	bob.run(t, "profile", "set", "-name", "Bob")
	bob.allowVaultPassword()
	bob.passwords.EXPECT().ReadPassword("Пароль пакета: ").Return(packagePW, nil).Times(2)

	out := bob.run(t, "import", pkg)
	assert.Contains(t, out, `Контакт "Alice" сохранён`)

	err := bob.Run(ctx, []string{"import", pkg})
	assert.ErrorIs(t, err, service.ErrNameCollision)

	contacts, err := bob.services.ContactService.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	id := contacts[0].ID

	assert.Contains(t, bob.run(t, "contacts", "list"), "Alice")
	assert.Contains(t, bob.run(t, "contacts", "show", id), "1990-01-01")

	bob.run(t, "contacts", "remark", id, "school", "friend")
	assert.Contains(t, bob.run(t, "contacts", "list"), "Alice (school friend)")

	bob.prompter.EXPECT().ConfirmDelete(gomock.Any(), gomock.Any()).Return(false, nil)
	err = bob.Run(ctx, []string{"contacts", "delete", id})
	assert.ErrorIs(t, err, service.ErrDeleteNotConfirmed)

	bob.prompter.EXPECT().ConfirmDelete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.ContactSnapshot) (bool, error) {
			assert.Equal(t, "Alice (school friend)", c.DisplayName())
			return true, nil
		})
	assert.Contains(t, bob.run(t, "contacts", "delete", id), "удалён")

	err = bob.Run(ctx, []string{"contacts", "delete", "-yes", id})
	assert.ErrorIs(t, err, service.ErrContactNotFound)
}

func TestApp_ContactImportWithRemark(t *testing.T) {
	_, pkg := newAlice(t)

	bob := newTestApp(t, newTestStorage(t))
	bob.init(t)
	bob.run(t, "profile", "set", "-name", "Bob")
	bob.allowVaultPassword()
	bob.passwords.EXPECT().ReadPassword("Пароль пакета: ").Return(packagePW, nil)

	bob.run(t, "import", "-remark", "university", pkg)
	assert.Contains(t, bob.run(t, "contacts", "list"), "Alice (university)")
}

func TestApp_Version(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))

	out := a.run(t, "version")
	assert.Contains(t, out, "MySelf")
	assert.Contains(t, out, "1.0.0")
}

func TestApp_RunStopsWorkers(t *testing.T) {
	a := newTestApp(t, newTestStorage(t))
	sweeper := workers.NewSessionSweeper(a.sessions, time.Hour, logger.Nop())
	a.workers = workers.NewWorkers(sweeper)

	a.run(t, "version")

	select {
	case <-sweeper.Done():
	default:
		t.Fatal("sweeper is still running after the command returned")
	}
}
