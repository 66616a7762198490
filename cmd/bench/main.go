package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/vellum"
	"github.com/aretw0/vellum/pkg/index"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "vellum_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	// Direct file writes simulate a pre-existing vault without paying for
	// the engine during setup.
	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()
	stamp := time.Now().UTC().Format(time.RFC3339)
	for i := 0; i < *count; i++ {
		content := fmt.Sprintf(
			`{"id":"note-%d","title":"Benchmark Note %d","content":"<h1>Benchmark Note %d</h1><p>This is a test note.</p>","created_at":%q,"modified_at":%q,"is_favorite":false,"version":1}`,
			i, i, i, stamp, stamp,
		)
		filename := filepath.Join(benchDir, fmt.Sprintf("note-%d.json", i))
		if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.TODO()

	storage, err := vellum.InitStore(ctx, benchDir, vellum.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	// Run 1: Count never decodes records.
	fmt.Println("Running Count...")
	startCount := time.Now()
	total, err := storage.Count(ctx)
	if err != nil {
		panic(err)
	}
	countDuration := time.Since(startCount)
	fmt.Printf("Count Result: %v (Items: %d)\n", countDuration, total)

	// Run 2: LoadAll is the cold-start path (decode + sort everything).
	fmt.Println("Running LoadAll (cold start)...")
	startLoad := time.Now()
	notes, err := storage.LoadAll(ctx)
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	fmt.Printf("LoadAll Result: %v (Items: %d)\n", loadDuration, len(notes))

	// Run 3: Search over the loaded working set.
	ix := index.New()
	ix.Load(notes)

	fmt.Println("Running Search...")
	startSearch := time.Now()
	matches := ix.Search("benchmark note 9")
	searchDuration := time.Since(startSearch)
	fmt.Printf("Search Result: %v (Matches: %d)\n", searchDuration, len(matches))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  Count:   %v\n", countDuration)
	fmt.Printf("  LoadAll: %v\n", loadDuration)
	fmt.Printf("  Search:  %v\n", searchDuration)
	fmt.Printf("--------------------------------------------------\n")
}
