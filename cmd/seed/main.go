// Package main provides a tool to seed the database with sample lists,
// items, and tags for local development.
//
// Usage:
//
//	DB_PATH=~/LinkNest/data/db go run ./cmd/seed
//	DB_PATH=~/LinkNest/data/db go run ./cmd/seed --wipe-completed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/linknest/linknest-server/internal/domain"
	"github.com/linknest/linknest-server/internal/id"
	"github.com/linknest/linknest-server/internal/store"
	"github.com/linknest/linknest-server/internal/util"
)

var wipeCompleted = flag.Bool("wipe-completed", false, "Reset the completed flag on every seeded item")

type seedItem struct {
	title    string
	url      string
	desc     string
	location string
	tags     []string
}

var seedLists = map[string][]seedItem{
	"Places to Eat": {
		{title: "Ichiran Ramen", url: "https://en.ichiran.com", location: "Shibuya, Tokyo", tags: []string{"ramen", "japan"}},
		{title: "Noma", url: "https://noma.dk", desc: "Tasting menu, book months ahead", location: "Copenhagen", tags: []string{"fine-dining"}},
		{title: "Joe's Pizza", location: "Carmine St, New York", tags: []string{"pizza", "cheap-eats"}},
	},
	"Books to Read": {
		{title: "The Dispossessed", desc: "Le Guin, anarchist moon colony", tags: []string{"sci-fi"}},
		{title: "Piranesi", tags: []string{"fantasy"}},
	},
	"Weekend Trips": {
		{title: "Mount Takao Trail", desc: "Easy day hike with cable car option", location: "Hachioji, Tokyo", tags: []string{"hiking", "japan"}},
		{title: "Bruges Canal Walk", location: "Bruges, Belgium", tags: []string{"europe"}},
	},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/LinkNest/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for listName, items := range seedLists {
		list, err := ensureList(ctx, s, listName)
		if err != nil {
			log.Fatalf("Failed to ensure list %q: %v", listName, err)
		}

		for _, seed := range items {
			tagIDs, err := resolveTags(ctx, s, seed.tags)
			if err != nil {
				log.Fatalf("Failed to resolve tags for %q: %v", seed.title, err)
			}

			itemID, err := id.Generate("item")
			if err != nil {
				log.Fatalf("Failed to generate item id: %v", err)
			}

			now := time.Now()
			item := &domain.Item{
				ID:          itemID,
				ListID:      list.ID,
				Title:       seed.title,
				URL:         seed.url,
				Description: seed.desc,
				Location:    seed.location,
				TagIDs:      tagIDs,
				Completed:   !*wipeCompleted && rng.Intn(3) == 0,
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			if err := s.CreateItem(ctx, item); err != nil {
				log.Printf("Skipping %q: %v", seed.title, err)
				continue
			}
			created++
		}

		fmt.Printf("List %q ready with %d seed items\n", listName, len(items))
	}

	fmt.Printf("\nSeeded %d items across %d lists\n", created, len(seedLists))
}

// ensureList finds a list by name or creates it.
func ensureList(ctx context.Context, s *store.Store, name string) (*domain.List, error) {
	lists, err := s.ListLists(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range lists {
		if l.Name == name {
			return &l.List, nil
		}
	}

	listID, err := id.Generate("list")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	list := &domain.List{
		ID:        listID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// resolveTags maps tag names to IDs, creating missing tags.
func resolveTags(ctx context.Context, s *store.Store, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		slug := util.NormalizeTagSlug(name)
		if slug == "" {
			continue
		}
		tag, _, err := s.FindOrCreateTagBySlug(ctx, slug, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
