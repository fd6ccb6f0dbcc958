package main

import (
	"log"

	"goodwill-valuation/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("goodwill-valuation: %v", err)
	}
}
