package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-myself-vault/models"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Now()

	latest, err := m.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	require.NoError(t, m.Save(ctx, models.Session{Token: "old", CreatedAt: now.Add(-time.Hour), ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, m.Save(ctx, models.Session{Token: "new", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))

	latest, err = m.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.Token)

	n, err := m.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, m.Delete(ctx, "missing"))

	n, err = m.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	latest, err = m.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := models.Session{Token: string(rune('a' + i%26)), CreatedAt: time.Now()}
			_ = m.Save(ctx, s)
			_, _ = m.Latest(ctx)
		}()
	}
	wg.Wait()

	n, err := m.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(26), n)
}
