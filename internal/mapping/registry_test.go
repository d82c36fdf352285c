package mapping

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ScopesAreIsolated(t *testing.T) {
	r := NewRegistry(Options{})

	storeA, err := r.LoadOrStore("a", nil)
	require.NoError(t, err)
	storeB, err := r.LoadOrStore("b", nil)
	require.NoError(t, err)
	require.NotSame(t, storeA, storeB)

	storeA.AutoMap([]string{"199001110"})
	again, err := r.LoadOrStore("a", nil)
	require.NoError(t, err)
	assert.Same(t, storeA, again)
	assert.Equal(t, 1, again.Len())
	assert.Zero(t, storeB.Len())

	r.Drop("a")
	assert.Equal(t, []string{"b"}, r.Scopes())
	fresh, err := r.LoadOrStore("a", nil)
	require.NoError(t, err)
	assert.Zero(t, fresh.Len(), "dropped scope starts over")
}

func TestRegistry_LoadOrStoreUsesLoader(t *testing.T) {
	r := NewRegistry(Options{})
	s := testStore()

	got, err := r.LoadOrStore("district-2025", func() (*Store, error) { return s, nil })
	require.NoError(t, err)
	assert.Same(t, s, got)

	got, err = r.LoadOrStore("district-2025", func() (*Store, error) {
		t.Fatal("loader called for a known scope")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestRegistry_LoadOrStoreError(t *testing.T) {
	r := NewRegistry(Options{})
	boom := errors.New("boom")

	_, err := r.LoadOrStore("x", func() (*Store, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, r.Scopes(), "failed loads are not kept")
}

func TestRegistry_LoadOrStoreConcurrent(t *testing.T) {
	r := NewRegistry(Options{})
	var loads atomic.Int32

	const n = 16
	stores := make([]*Store, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := r.LoadOrStore("shared", func() (*Store, error) {
				loads.Add(1)
				return testStore(), nil
			})
			assert.NoError(t, err)
			stores[i] = s
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, s := range stores {
		assert.Same(t, stores[0], s)
	}
}
