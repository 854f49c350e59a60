package cache

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archdsl/internal/annotations"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), ".archdsl", "cache.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDecls() []annotations.Declaration {
	return []annotations.Declaration{{
		File:     "orders/api.go",
		Line:     12,
		Language: annotations.LangGo,
		Package:  "orders",
		Name:     "Fetch",
		Kind:     "function",
		Doc:      "Fetch loads an order.",
		Directives: []annotations.Directive{
			{Kind: annotations.KindUses, Args: []string{"Store", "reads", "db"}, Line: 10},
		},
	}}
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("orders/api.go", "h1")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache should miss")

	require.NoError(t, s.Put("orders/api.go", "h1", sampleDecls()))

	got, ok, err := s.Get("orders/api.go", "h1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDecls(), got)

	_, ok, err = s.Get("orders/api.go", "h2")
	require.NoError(t, err)
	assert.False(t, ok, "changed content should miss")
}

func TestStore_PutReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("a.go", "old", sampleDecls()))
	require.NoError(t, s.Put("a.go", "new", nil))

	_, ok, err := s.Get("a.go", "old")
	require.NoError(t, err)
	assert.False(t, ok)

	got, ok, err := s.Get("a.go", "new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestStore_ConcurrentPut(t *testing.T) {
	s := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Put(filepath.Join("pkg", string(rune('a'+i))+".go"), "h", sampleDecls()))
		}()
	}
	wg.Wait()

	removed, err := s.Prune("", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, removed)
}

func TestStore_Prune(t *testing.T) {
	s := openTestStore(t)

	for _, p := range []string{"a.go", "b.go", "c.py"} {
		require.NoError(t, s.Put(p, "h", sampleDecls()))
	}

	removed, err := s.Prune(".", []string{"a.go", "c.py"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok, err := s.Get("b.go", "h")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Get("a.go", "h")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err = s.Prune(".", []string{"a.go", "c.py"})
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStore_PruneScoped(t *testing.T) {
	s := openTestStore(t)

	for _, p := range []string{"svc/a.go", "svc/old.go", "services/b.go", "lib/c.go"} {
		require.NoError(t, s.Put(p, "h", sampleDecls()))
	}

	removed, err := s.Prune("svc", []string{"svc/a.go"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed, "only svc/old.go is stale")

	for p, want := range map[string]bool{"svc/a.go": true, "svc/old.go": false, "services/b.go": true, "lib/c.go": true} {
		_, ok, err := s.Get(p, "h")
		require.NoError(t, err)
		assert.Equal(t, want, ok, p)
	}
}

func TestStore_RecordRun(t *testing.T) {
	s := openTestStore(t)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.RecordRun(Run{Root: ".", Files: 4, CacheHits: 3, Declarations: 9, StartedAt: start, Duration: 1500 * time.Millisecond})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated run id should be a uuid")

	_, err = s.RecordRun(Run{ID: "fixed", Root: "svc", StartedAt: start.Add(time.Hour)})
	require.NoError(t, err)

	runs, err := s.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "fixed", runs[0].ID, "newest run first")
	assert.Equal(t, id, runs[1].ID)
	assert.Equal(t, 3, runs[1].CacheHits)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.True(t, start.Equal(runs[1].StartedAt))
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("a.go", "h", sampleDecls()))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("a.go", "h")
	require.NoError(t, err)
	assert.True(t, ok, "entries survive reopening")
	assert.Equal(t, path, s.Path())
}
