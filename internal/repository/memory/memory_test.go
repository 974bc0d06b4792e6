package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/skillsync/internal/apperror"
)

func TestStore_RoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Load(ctx, "k")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, s.Save(ctx, "k", []byte("v1")))
	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	assert.Equal(t, 0, s.Len())
}

func TestStore_CopiesBuffers(t *testing.T) {
	s := New()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, s.Save(ctx, "k", buf))
	buf[0] = 'X'

	got, _ := s.Load(ctx, "k")
	assert.Equal(t, "abc", string(got))

	got[1] = 'Y'
	again, _ := s.Load(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestStore_ConcurrentWritersLastWriteWins(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, "shared", []byte("x"))
			_, _ = s.Load(ctx, "shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
