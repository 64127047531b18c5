package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcosgabbardo/irpf-analyzer/internal/tui"
)

func main() {
	// Get declaration file path from arguments
	declPath := ""
	if len(os.Args) > 1 {
		declPath = os.Args[1]
	} else {
		fmt.Println("Usage: irpf-tui <declaration-file>")
		os.Exit(1)
	}

	// Check if declaration file exists
	if _, err := os.Stat(declPath); os.IsNotExist(err) {
		fmt.Printf("Error: Declaration file not found: %s\n", declPath)
		os.Exit(1)
	}

	// Create the application model
	model := tui.NewModel(declPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
