// Package main provides a read-only inspector for the LinkNest key-value store.
//
// Usage:
//
//	DB_PATH=~/LinkNest/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/linknest/linknest-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/LinkNest/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	listCount := countPrefix(db, "list:")
	tagCount := countPrefix(db, "tag:")

	itemCount := 0
	completedCount := 0
	taggedCount := 0
	shown := 0

	err = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte("item:")
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek([]byte("item:")); it.ValidForPrefix([]byte("item:")); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var item domain.Item
				if err := json.Unmarshal(val, &item); err != nil {
					return err
				}

				itemCount++
				if item.Completed {
					completedCount++
				}
				if len(item.TagIDs) > 0 {
					taggedCount++
				}

				if shown < 5 {
					shown++
					fmt.Printf("Item: %s\n", item.Title)
					fmt.Printf("  ID: %s\n", item.ID)
					fmt.Printf("  List: %s\n", item.ListID)
					if item.Location != "" {
						fmt.Printf("  Location: %s\n", item.Location)
					}
					fmt.Printf("  Tags: %d  Completed: %v\n", len(item.TagIDs), item.Completed)
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading item %s: %v", it.Item().Key(), err)
			}
		}
		return nil
	})

	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Lists: %d\n", listCount)
	fmt.Printf("Tags: %d\n", tagCount)
	fmt.Printf("Items: %d\n", itemCount)
	fmt.Printf("  completed: %d\n", completedCount)
	fmt.Printf("  tagged: %d\n", taggedCount)
}

// countPrefix counts primary records under a key prefix.
func countPrefix(db *badger.DB, prefix string) int {
	count := 0
	_ = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			count++
		}
		return nil
	})
	return count
}
