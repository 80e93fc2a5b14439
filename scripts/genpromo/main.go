package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates sample free-shipping promo lists for local development.
// Codes present in either list are accepted by the default validator
// (MinMatchCount 1).
func main() {
	dataDir := "data/promo"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	lists := map[string][]string{
		"freeship1.gz": {
			"FREESHIP",
			"MONSOON25",
			"FERNWEAR10",
		},
		"freeship2.gz": {
			"FREESHIP",
			"DIWALI25",
			"LAUNCHWEEK",
		},
	}

	for filename, codes := range lists {
		path := filepath.Join(dataDir, filename)
		if err := writeGzipList(path, codes); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Wrote %d codes to %s\n", len(codes), path)
	}
}

func writeGzipList(path string, codes []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintln(gz, code); err != nil {
			return err
		}
	}

	return nil
}
