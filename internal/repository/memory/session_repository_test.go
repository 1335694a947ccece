package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"retroFinder/business/finder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, finder.Session{ID: "s1", Round: 2}))

	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Round)

	// callers get a copy
	got.Round = 9
	again, _ := repo.Get(ctx, "s1")
	assert.Equal(t, 2, again.Round)

	require.NoError(t, repo.Delete(ctx, "s1"))
	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo := NewSessionRepository(time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, finder.Session{ID: "old"}))
	now = now.Add(30 * time.Second)
	require.NoError(t, repo.Save(ctx, finder.Session{ID: "new"}))

	now = now.Add(45 * time.Second)

	got, _ := repo.Get(ctx, "old")
	assert.Nil(t, got)
	got, _ = repo.Get(ctx, "new")
	assert.NotNil(t, got)

	n, err := repo.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Len(t, repo.data, 1)
}

func TestSessionRepository_ConcurrentSessions(t *testing.T) {
	repo := NewSessionRepository(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_ = repo.Save(ctx, finder.Session{ID: id, Round: i})
			_, _ = repo.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		got, err := repo.Get(ctx, fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, i, got.Round)
	}
}
