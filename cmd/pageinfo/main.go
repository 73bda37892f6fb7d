package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pageforge-apps/pagedeck-golang/pkg/document"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: pageinfo <pdf_file> [<pdf_file> ...]")
		os.Exit(1)
	}

	for _, path := range os.Args[1:] {
		inv, err := document.ProbeFile(path)
		if err != nil {
			log.Fatalf("Failed to probe %s: %v", path, err)
		}

		fmt.Printf("%s: %d pages\n", path, inv.PageCount)
		for i, dim := range inv.Dims {
			fmt.Printf("  page %d: %.2f x %.2f\n", i+1, dim.Width, dim.Height)
		}
	}
}
