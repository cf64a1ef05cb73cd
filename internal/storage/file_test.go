package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Renal37/orderdesk/internal/models"
)

func TestFileStorageCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "orders.json")
	store := NewFileStorage(path)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestFileStorageSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	store := NewFileStorage(path)

	record := models.Record{
		"id":       json.RawMessage(`"ORD-123456"`),
		"name":     json.RawMessage(`"Ravi"`),
		"quantity": json.RawMessage(`12`),
		"extra":    json.RawMessage(`{"unit":"kg"}`),
	}

	require.NoError(t, store.Save(context.Background(), []models.Record{record}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\n  {\n    \"extra\"")

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ORD-123456", records[0].ID())
	assert.JSONEq(t, `{"unit":"kg"}`, string(records[0]["extra"]))
	assert.Equal(t, json.RawMessage(`12`), records[0]["quantity"])
}

func TestFileStorageSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	store := NewFileStorage(path)

	require.NoError(t, store.Save(context.Background(), nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(content))
}

func TestFileStorageLoadCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStorage(path).Load(context.Background())
	assert.Error(t, err)
}

func TestOpenWithoutDSNUsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")

	backend, closeFn, err := Open(context.Background(), "", path)
	require.NoError(t, err)
	defer closeFn()

	file, ok := backend.(*FileStorage)
	require.True(t, ok)
	assert.Equal(t, path, file.Path())
}
