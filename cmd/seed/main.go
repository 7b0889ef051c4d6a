package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/meur/lorequiz/internal/models"
	"github.com/meur/lorequiz/internal/storage"
)

// Catalog is the seed file layout: item types first, then items carrying
// their modifier lines inline.
type Catalog struct {
	ItemTypes []models.ItemType `json:"item_types"`
	Items     []models.Item     `json:"items"`
}

func main() {
	dbPath := flag.String("db", "./lorequiz.db", "SQLite database path")
	catalogPath := flag.String("catalog", "./seeds/catalog.json", "Catalog JSON path")
	flag.Parse()

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Fatalf("Failed to parse catalog: %v", err)
	}

	for i := range catalog.ItemTypes {
		if err := store.CreateItemType(&catalog.ItemTypes[i]); err != nil {
			log.Fatalf("Failed to seed item type %d: %v", catalog.ItemTypes[i].ID, err)
		}
	}
	if err := store.BulkCreateItems(catalog.Items); err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	log.Printf("Seeded %d item types and %d items from %s",
		len(catalog.ItemTypes), len(catalog.Items), *catalogPath)
}
