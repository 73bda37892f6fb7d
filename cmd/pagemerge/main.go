// pagemerge concatenates the pages of two or more PDFs into one output
// file, in argument order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	pagedeck "github.com/pageforge-apps/pagedeck-golang"
	"github.com/pageforge-apps/pagedeck-golang/pkg/observability"
)

func main() {
	verbose := flag.Bool("v", false, "log per-slot progress to stderr")
	flag.Parse()

	if flag.NArg() < 3 {
		fmt.Println("Usage: pagemerge [-v] <out.pdf> <in1.pdf> <in2.pdf> [...]")
		os.Exit(1)
	}
	outPath := flag.Arg(0)
	inputs := flag.Args()[1:]

	logger := observability.NewStdLogger(log.New(os.Stderr, "", log.LstdFlags), *verbose)
	e := pagedeck.NewEditor(pagedeck.WithLogger(logger))

	for i, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}
		if i == 0 {
			_, err = e.Open(data)
		} else {
			_, err = e.Append(data)
		}
		if err != nil {
			log.Fatalf("Failed to load %s: %v", path, err)
		}
	}

	data, err := e.ExportBytes(context.Background())
	if err != nil {
		log.Fatalf("Failed to merge: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}
	fmt.Printf("Merged %d files (%d pages) into %s\n", len(inputs), e.Len(), outPath)
}
