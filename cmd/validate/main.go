package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/level"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <instances.json> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		v := &instanceValidator{}
		if err := v.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type instanceValidator struct {
	errors []string
}

func (v *instanceValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var f experiment.File
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	v.validateInstances(&f)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *instanceValidator) validateInstances(f *experiment.File) {
	if len(f.Experiments) == 0 {
		v.errors = append(v.errors, "  file contains no experiments")
		return
	}

	for _, exp := range f.Experiments {
		if exp.Name == "" {
			v.errors = append(v.errors, "  experiment with empty name")
		}
		seen := make(map[int]bool)
		for _, gi := range exp.GameInstances {
			prefix := fmt.Sprintf("  experiment %q game %d:", exp.Name, gi.GameID)
			if seen[gi.GameID] {
				v.errors = append(v.errors, prefix+" duplicate game_id")
			}
			seen[gi.GameID] = true

			if gi.Prompt == "" {
				v.errors = append(v.errors, prefix+" empty prompt")
			}
			if _, err := level.Parse(gi.Config); err != nil {
				v.errors = append(v.errors, fmt.Sprintf("%s %v", prefix, err))
			}
		}
	}
}
