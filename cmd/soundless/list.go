package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the variants",
	Long:  `Shows every registered variant and the rule set it plays.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "ID", "Mode", "Title")
	fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, "--", "----", "-----")
	for _, v := range variants {
		mode, _ := soundless.ModeFor(v.ID)
		fmt.Printf("  %-*s  %-6s  %s\n", maxIDLen, v.ID, mode, v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'soundless play <id>' to play a variant.")
}
