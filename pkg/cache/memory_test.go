package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "cep:01001000", []byte(`{"uf":"SP"}`), 2*time.Hour))

	got, found, err := s.Get(ctx, "cep:01001000")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"uf":"SP"}`, string(got))

	now = now.Add(2 * time.Hour)
	_, found, err = s.Get(ctx, "cep:01001000")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	value := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", value, time.Minute))
	value[0] = 'x'

	got, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
	got[1] = 'y'

	again, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryStorePurge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "short", []byte("1"), time.Millisecond))
	require.NoError(t, s.Set(ctx, "long", []byte("2"), time.Hour))
	s.now = func() time.Time { return time.Now().Add(time.Second) }

	s.purgeExpired()
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Millisecond)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val := []byte(fmt.Sprintf("value-%02d", i))
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, "shared", val, time.Minute)
				got, found, _ := s.Get(ctx, "shared")
				if found {
					assert.Len(t, got, len("value-00"))
				}
			}
		}(i)
	}
	wg.Wait()
}
