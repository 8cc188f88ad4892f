package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-myself-vault/internal/card"
	"github.com/MKhiriev/go-myself-vault/internal/compress"
	"github.com/MKhiriev/go-myself-vault/internal/config"
	"github.com/MKhiriev/go-myself-vault/internal/crypto"
	"github.com/MKhiriev/go-myself-vault/internal/logger"
	"github.com/MKhiriev/go-myself-vault/internal/store"
	"github.com/MKhiriev/go-myself-vault/internal/vault"
	"github.com/MKhiriev/go-myself-vault/models"
)

const (
	testVaultPassword  = "local-vault-pw"
	testExportPassword = "correct-horse"
	testVersion        = "1.2.0"
)

// testEnv is one installation: its own database, vault and services.
type testEnv struct {
	storage  *store.LocalStorages
	keyChain crypto.KeyChain
	u        *vault.Unlocked
	*Services
}

func newTestEnv(t *testing.T, decider Decider) *testEnv {
	t.Helper()
	ctx := context.Background()

	s, err := store.NewLocalStorages(ctx, config.DB{DSN: filepath.Join(t.TempDir(), "myself.db")}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	kc := crypto.NewKeyChain(crypto.KDFIterations)
	u, err := vault.NewVault(s, kc, logger.Nop()).SetPassword(ctx, testVaultPassword)
	require.NoError(t, err)
	t.Cleanup(u.Lock)

	cfg := config.StructuredConfig{App: config.App{Version: testVersion}}
	return &testEnv{
		storage:  s,
		keyChain: kc,
		u:        u,
		Services: NewServices(s, kc, card.NewRenderer(), decider, cfg, logger.Nop()),
	}
}

func (e *testEnv) withProfile(t *testing.T, p models.Profile) models.Profile {
	t.Helper()
	saved, err := e.ProfileService.Update(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func (e *testEnv) addTest(t *testing.T, id, typ string) {
	t.Helper()
	_, err := e.RecordService.AddTest(context.Background(), models.TestRecord{
		ID:     id,
		Type:   typ,
		Result: json.RawMessage(`{"score":1}`),
	})
	require.NoError(t, err)
}

func (e *testEnv) addDiary(t *testing.T, id, content string) {
	t.Helper()
	_, err := e.RecordService.AddDiary(context.Background(), e.u, models.DiaryEntry{ID: id, Title: id, Content: content})
	require.NoError(t, err)
}

func (e *testEnv) export(t *testing.T, sel models.Selection) []byte {
	t.Helper()
	res, err := e.ExportService.Export(context.Background(), e.u, sel, testExportPassword)
	require.NoError(t, err)
	return res.Package
}

// snapshot is the observable local state used to prove an operation wrote
// nothing.
type snapshot struct {
	Profile  models.Profile
	Tests    []models.TestRecord
	Diary    []models.DiaryEntry
	Contacts []models.ContactSnapshot
}

func (e *testEnv) snapshot(t *testing.T) snapshot {
	t.Helper()
	ctx := context.Background()

	p, err := e.ProfileService.Get(ctx)
	require.NoError(t, err)
	tests, err := e.RecordService.ListTests(ctx)
	require.NoError(t, err)
	diary, err := e.RecordService.ListDiary(ctx, e.u)
	require.NoError(t, err)
	contacts, err := e.ContactService.List(ctx)
	require.NoError(t, err)

	return snapshot{Profile: p, Tests: tests, Diary: diary, Contacts: contacts}
}

func allSelection() models.Selection {
	return models.Selection{AllTests: true, Diary: true, Contacts: true, Profile: true}
}

// legacyUnsignedPackage writes ds the way old releases did: gzip JSON in
// the RGB channels of a PNG behind the MSA1 marker.
func legacyUnsignedPackage(t *testing.T, ds models.ExportDataset) []byte {
	t.Helper()

	raw, err := json.Marshal(ds)
	require.NoError(t, err)
	payload, err := compress.Compress(raw)
	require.NoError(t, err)

	stream := append([]byte("MSA1"), binary.BigEndian.AppendUint32(nil, uint32(len(payload)))...)
	stream = append(stream, payload...)

	const width = 32
	pixels := (len(stream) + 2) / 3
	height := (pixels + width - 1) / width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		var rgb [3]byte
		for c := range rgb {
			if idx := i*3 + c; idx < len(stream) {
				rgb[c] = stream[idx]
			}
		}
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
