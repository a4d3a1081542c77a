package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/finwatch/internal/storage"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// backends returns every KV implementation available in this environment.
func backends(t *testing.T) map[string]func(t *testing.T) storage.KV {
	t.Helper()

	b := map[string]func(t *testing.T) storage.KV{
		"memory": func(t *testing.T) storage.KV {
			return storage.NewMemoryKV()
		},
		"json": func(t *testing.T) storage.KV {
			kv, err := storage.NewJSONKV(filepath.Join(t.TempDir(), "finwatch.json"))
			assert.NilError(t, err)
			return kv
		},
		"sqlite": func(t *testing.T) storage.KV {
			kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "finwatch.db"))
			assert.NilError(t, err)
			t.Cleanup(func() { kv.Close() })
			return kv
		},
	}

	if addr := os.Getenv("FINWATCH_TEST_REDIS"); addr != "" {
		b["redis"] = func(t *testing.T) storage.KV {
			kv, err := storage.NewRedisKV(storage.RedisOptions{Addr: addr, Prefix: "finwatch-test-" + t.Name()})
			assert.NilError(t, err)
			t.Cleanup(func() {
				keys, _ := kv.Keys()
				for _, k := range keys {
					kv.Delete(k)
				}
				kv.Close()
			})
			return kv
		}
	}

	return b
}

func TestKV_Contract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open(t)

			_, ok, err := kv.Get("missing")
			assert.NilError(t, err)
			assert.Check(t, !ok, "missing key should report false")

			assert.NilError(t, kv.Set("b", []byte(`["x"]`)))
			assert.NilError(t, kv.Set("a", []byte("plain")))
			assert.NilError(t, kv.Set("a", []byte("overwritten")))

			got, ok, err := kv.Get("a")
			assert.NilError(t, err)
			assert.Check(t, ok)
			assert.Equal(t, string(got), "overwritten")

			keys, err := kv.Keys()
			assert.NilError(t, err)
			assert.DeepEqual(t, keys, []string{"a", "b"})

			assert.NilError(t, kv.Delete("a"))
			assert.NilError(t, kv.Delete("never-set"))

			_, ok, err = kv.Get("a")
			assert.NilError(t, err)
			assert.Check(t, !ok, "deleted key should be gone")

			keys, err = kv.Keys()
			assert.NilError(t, err)
			assert.DeepEqual(t, keys, []string{"b"})
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := storage.NewMemoryKV()
	value := []byte("abc")
	assert.NilError(t, kv.Set("k", value))
	value[0] = 'z'

	got, _, _ := kv.Get("k")
	assert.Equal(t, string(got), "abc")
}

func TestJSONKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "finwatch.json")

	kv, err := storage.NewJSONKV(path)
	assert.NilError(t, err)
	assert.NilError(t, kv.Set("activeWatchlistId", []byte("abc")))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("storage file was not created")
	}

	reopened, err := storage.NewJSONKV(path)
	assert.NilError(t, err)
	got, ok, err := reopened.Get("activeWatchlistId")
	assert.NilError(t, err)
	assert.Check(t, ok)
	assert.Equal(t, string(got), "abc")
}

func TestJSONKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finwatch.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := storage.NewJSONKV(path)
	assert.Check(t, err != nil, "expected error for corrupt file")
}

func TestSQLiteKV_SchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finwatch.db")

	kv, err := storage.NewSQLiteKV(path)
	assert.NilError(t, err)
	assert.NilError(t, kv.Set("k", []byte("v")))
	kv.Close()

	// Reopening must not re-run migrations on an up-to-date database.
	kv, err = storage.NewSQLiteKV(path)
	assert.NilError(t, err)
	defer kv.Close()

	version, err := kv.SchemaVersion()
	assert.NilError(t, err)
	assert.Equal(t, version, 2)

	got, ok, err := kv.Get("k")
	assert.NilError(t, err)
	assert.Check(t, ok)
	assert.Equal(t, string(got), "v")

	_, ok, err = kv.UpdatedAt("k")
	assert.NilError(t, err)
	assert.Check(t, ok, "expected updated_at to be recorded")
}

func TestSQLiteKV_EmptyValue(t *testing.T) {
	kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "finwatch.db"))
	assert.NilError(t, err)
	defer kv.Close()

	assert.NilError(t, kv.Set("empty", nil))
	got, ok, err := kv.Get("empty")
	assert.NilError(t, err)
	assert.Check(t, ok)
	assert.Check(t, is.Len(got, 0))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		params  storage.OpenParams
		wantErr error
	}{
		{"memory", storage.OpenParams{Backend: storage.BackendMemory}, nil},
		{"json", storage.OpenParams{Backend: storage.BackendJSON, Path: filepath.Join(dir, "a.json")}, nil},
		{"sqlite", storage.OpenParams{Backend: storage.BackendSQLite, Path: filepath.Join(dir, "a.db")}, nil},
		{"default is sqlite", storage.OpenParams{Path: filepath.Join(dir, "b.db")}, nil},
		{"unknown", storage.OpenParams{Backend: "etcd"}, storage.ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, err := storage.Open(tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Open() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			assert.NilError(t, err)
			assert.NilError(t, kv.Close())
		})
	}
}
