// pagecollect writes a new PDF holding the requested pages of the input,
// in the requested order. Page numbers are 1-based, may repeat, and may
// appear in any order, e.g. -pages 3,1,3.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	pagedeck "github.com/pageforge-apps/pagedeck-golang"
)

func main() {
	in := flag.String("in", "", "input PDF file")
	out := flag.String("out", "", "output PDF file")
	pages := flag.String("pages", "", "comma-separated 1-based page numbers, order kept, duplicates allowed")
	flag.Parse()

	if *in == "" || *out == "" || *pages == "" {
		fmt.Println("Usage: pagecollect -in <pdf> -out <pdf> -pages 3,1,3")
		os.Exit(1)
	}

	indices, err := parsePages(*pages)
	if err != nil {
		log.Fatalf("Bad -pages value: %v", err)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *in, err)
	}

	e, err := pagedeck.NewSession(data)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *in, err)
	}

	sub, err := e.ExtractSubset(indices)
	if err != nil {
		log.Fatalf("Failed to select pages: %v", err)
	}
	h, err := pagedeck.Realize(context.Background(), sub, e.Registry())
	if err != nil {
		log.Fatalf("Failed to build output: %v", err)
	}
	result, err := h.Save()
	if err != nil {
		log.Fatalf("Failed to save output: %v", err)
	}

	if err := os.WriteFile(*out, result, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	fmt.Printf("Wrote %d pages to %s\n", h.PageCount(), *out)
}

// parsePages turns "3,1,3" into 0-based slot indices [2 0 2].
func parsePages(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not a page number", p)
		}
		if n < 1 {
			return nil, fmt.Errorf("page numbers are 1-based, got %d", n)
		}
		out = append(out, n-1)
	}
	return out, nil
}
