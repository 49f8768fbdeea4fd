package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/id"
)

// Key prefixes for list storage.
const (
	listPrefix        = "list:"           // list:{id} → List JSON
	itemsByListPrefix = "idx:items:list:" // idx:items:list:{listID}:{itemID} → empty
)

var (
	// ErrListNotFound is returned when a list is not found in the store.
	ErrListNotFound = errors.New("list not found")
	// ErrDuplicateList is returned when trying to create a list that already exists.
	ErrDuplicateList = errors.New("list already exists")
)

// starterLists are seeded on first run so a fresh install isn't empty.
var starterLists = []struct {
	Name string
	Icon string
}{
	{Name: "Places to Eat", Icon: "🍕"},
	{Name: "Hikes to Do", Icon: "🥾"},
	{Name: "Books to Read", Icon: "📚"},
	{Name: "Movies to Watch", Icon: "🎬"},
}

// BootstrapResult contains the outcome of first-run initialization.
type BootstrapResult struct {
	Lists      []*domain.List
	IsFirstRun bool
}

// EnsureStarterLists seeds the starter lists when the store is empty.
// Idempotent: once any list exists, subsequent calls return the current
// lists without creating anything.
func (s *Store) EnsureStarterLists(ctx context.Context) (*BootstrapResult, error) {
	existing, err := s.ListLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}

	if len(existing) > 0 {
		lists := make([]*domain.List, len(existing))
		for i := range existing {
			l := existing[i].List
			lists[i] = &l
		}
		return &BootstrapResult{Lists: lists, IsFirstRun: false}, nil
	}

	if s.logger != nil {
		s.logger.Info("empty store, seeding starter lists")
	}

	result := &BootstrapResult{IsFirstRun: true}
	for _, seed := range starterLists {
		listID, err := id.Generate("list")
		if err != nil {
			return nil, fmt.Errorf("generate list ID: %w", err)
		}

		now := time.Now()
		list := &domain.List{
			ID:        listID,
			Name:      seed.Name,
			Icon:      seed.Icon,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.CreateList(ctx, list); err != nil {
			return nil, fmt.Errorf("create starter list %q: %w", seed.Name, err)
		}
		result.Lists = append(result.Lists, list)
	}

	if s.logger != nil {
		s.logger.Info("starter lists created", "count", len(result.Lists))
	}

	return result, nil
}

// CreateList creates a new list in the store.
func (s *Store) CreateList(ctx context.Context, list *domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := buildKey(listPrefix, list.ID)
	defer releaseKey(key)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check list exists: %w", err)
	}
	if exists {
		return ErrDuplicateList
	}

	if err := s.set(key, list); err != nil {
		return fmt.Errorf("save list: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("list created", "id", list.ID, "name", list.Name)
	}
	return nil
}

// GetList retrieves a list by ID.
func (s *Store) GetList(ctx context.Context, listID string) (*domain.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := buildKey(listPrefix, listID)
	defer releaseKey(key)

	var list domain.List
	if err := s.get(key, &list); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("get list: %w", err)
	}

	return &list, nil
}

// GetListSummary retrieves a list together with its projected item count.
func (s *Store) GetListSummary(ctx context.Context, listID string) (*domain.ListSummary, error) {
	list, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ListSummary{List: *list}
	err = s.db.View(func(txn *badger.Txn) error {
		summary.ItemCount = countPrefix(txn, []byte(itemsByListPrefix+listID+":"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count list items: %w", err)
	}

	return summary, nil
}

// UpdateList updates an existing list in the store.
func (s *Store) UpdateList(ctx context.Context, list *domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := buildKey(listPrefix, list.ID)
	defer releaseKey(key)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check list exists: %w", err)
	}
	if !exists {
		return ErrListNotFound
	}

	if err := s.set(key, list); err != nil {
		return fmt.Errorf("update list: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("list updated", "id", list.ID, "name", list.Name)
	}
	return nil
}

// DeleteList deletes a list and every item that belongs to it.
// The list record, all item records, and all their index entries are
// removed in a single transaction.
func (s *Store) DeleteList(ctx context.Context, listID string) error {
	if _, err := s.GetList(ctx, listID); err != nil {
		return err
	}

	var deletedItemIDs []string

	err := s.db.Update(func(txn *badger.Txn) error {
		// Collect the items owned by this list from the index.
		indexPrefix := []byte(itemsByListPrefix + listID + ":")
		itemIDs, err := collectAssocMembers(txn, indexPrefix)
		if err != nil {
			return err
		}

		for _, itemID := range itemIDs {
			if err := deleteItemInTxn(txn, itemID); err != nil {
				return err
			}
			deletedItemIDs = append(deletedItemIDs, itemID)
		}

		key := []byte(listPrefix + listID)
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}

	for _, itemID := range deletedItemIDs {
		s.removeItemFromIndexAsync(itemID)
	}

	if s.logger != nil {
		s.logger.Info("list deleted", "id", listID, "items_removed", len(deletedItemIDs))
	}

	return nil
}

// ListLists returns all lists with their projected item counts,
// sorted by name ascending.
func (s *Store) ListLists(ctx context.Context) ([]*domain.ListSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(listPrefix)
	var summaries []*domain.ListSummary

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = 100

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var list domain.List
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &list)
			})
			if err != nil {
				continue
			}
			summaries = append(summaries, &domain.ListSummary{List: list})
		}

		// Project counts inside the same read transaction for a consistent view.
		for _, summary := range summaries {
			summary.ItemCount = countPrefix(txn, []byte(itemsByListPrefix+summary.ID+":"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}

// TouchList bumps the list's UpdatedAt timestamp. Called by item
// operations so a list reflects changes to its contents.
func (s *Store) TouchList(ctx context.Context, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return touchListInTxn(txn, listID)
	})
}

// touchListInTxn updates the list's UpdatedAt within an existing transaction.
func touchListInTxn(txn *badger.Txn, listID string) error {
	key := []byte(listPrefix + listID)

	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrListNotFound
	}
	if err != nil {
		return err
	}

	var list domain.List
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &list)
	}); err != nil {
		return err
	}

	list.Touch()

	data, err := json.Marshal(list)
	if err != nil {
		return err
	}

	return txn.Set(key, data)
}
