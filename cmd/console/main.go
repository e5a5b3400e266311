package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/level"
)

func main() {
	path := getEnv("INSTANCES_PATH", "./data/portalgame/instances.json")

	instances, err := experiment.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load instances: %v\n", err)
		os.Exit(1)
	}

	type choice struct {
		experiment string
		instance   experiment.GameInstance
	}
	var choices []choice
	fmt.Println("Available games:")
	for _, exp := range instances.Experiments {
		for _, gi := range exp.GameInstances {
			choices = append(choices, choice{exp.Name, gi})
			fmt.Printf("  %d - %s / game %d (%dx%d, %d moves)\n",
				len(choices), exp.Name, gi.GameID, gi.GridSize, gi.GridSize, gi.MaxMoves)
		}
	}
	fmt.Print("\nSelect a game by number: ")

	var n int
	if _, err := fmt.Scanf("%d", &n); err != nil || n < 1 || n > len(choices) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}
	selected := choices[n-1]

	lvl, err := level.Parse(selected.instance.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse level: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(lvl, selected.experiment, selected.instance.GameID),
		tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
