package psoscreen

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bodgit/psoscreen/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGallery(t *testing.T) {
	g := newTestGallery(t)

	now := time.Unix(1700000000, 0)
	g.now = func() time.Time { return now }

	name, err := g.Add("a", capture.GameCubeEp12, []byte("raw a"), []byte("image a"))
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	now = now.Add(time.Second)
	name, err = g.Add("b", capture.Dreamcast, []byte("raw b"), []byte("image b"))
	require.NoError(t, err)
	assert.Equal(t, "b", name)

	// Duplicate raw data
	name, err = g.Add("c", capture.GameCubeEp3, []byte("raw a"), []byte("image c"))
	require.NoError(t, err)
	assert.Equal(t, "a", name)

	b, err := g.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("image a"), b)

	_, err = g.Get("c")
	assert.Equal(t, ErrNotFound, err)

	entries, err := g.List()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "b", Platform: capture.Dreamcast, Created: now},
		{Name: "a", Platform: capture.GameCubeEp12, Created: now.Add(-time.Second)},
	}, entries)

	n, err := g.Prune(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = g.Get("a")
	assert.Equal(t, ErrNotFound, err)

	n, err = g.Prune(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGalleryAddConcurrent(t *testing.T) {
	g := newTestGallery(t)

	const n = 8

	var wg sync.WaitGroup
	names := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i], errs[i] = g.Add(fmt.Sprintf("capture%d", i), capture.Dreamcast, []byte("same raw"), []byte("image"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "add %d", i)
		assert.Equal(t, names[0], names[i])
	}

	entries, err := g.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, names[0], entries[0].Name)
}
