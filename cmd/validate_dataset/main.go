package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pantrypilot/backend/internal/dataset"
)

// Loads a dataset file with the same validation the server applies at
// startup and prints a short summary, so dataset edits can be checked
// before deploying.
func main() {
	path := flag.String("dataset", "data/recipes.json", "path to the recipe dataset")
	flag.Parse()

	store, err := dataset.LoadFile(*path)
	if err != nil {
		log.Fatalf("dataset invalid: %v", err)
	}

	byDifficulty := make(map[string]int)
	tags := make(map[string]int)
	for _, r := range store.All() {
		byDifficulty[r.Difficulty]++
		for _, t := range r.Dietary {
			tags[t]++
		}
	}

	fmt.Printf("%s: %d recipes\n", *path, store.Len())
	for _, d := range []string{"easy", "medium", "hard"} {
		fmt.Printf("  %s: %d\n", d, byDifficulty[d])
	}
	fmt.Printf("  dietary tags: %d distinct\n", len(tags))
}
