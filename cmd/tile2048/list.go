package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board variants",
	Long:  `Shows every registered board size.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "-----")
	for _, v := range variants {
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, v.ID, fmt.Sprintf("%dx%d", v.Column, v.Column), v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tile2048 play <id>' to play a board.")
}
