package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/linknest/linknest-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "linknest-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NotNil(t, store)

	// Return cleanup function
	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func makeTestList(t *testing.T, s *Store, listID, name string) *domain.List {
	t.Helper()

	now := time.Now()
	list := &domain.List{
		ID:        listID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateList(context.Background(), list))
	return list
}

func makeTestItem(t *testing.T, s *Store, itemID, listID, title string, tagIDs ...string) *domain.Item {
	t.Helper()

	now := time.Now()
	item := &domain.Item{
		ID:        itemID,
		ListID:    listID,
		Title:     title,
		TagIDs:    tagIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateItem(context.Background(), item))
	return item
}

func makeTestTag(t *testing.T, s *Store, tagID, name, slug string) *domain.Tag {
	t.Helper()

	now := time.Now()
	tag := &domain.Tag{
		ID:        tagID,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}
