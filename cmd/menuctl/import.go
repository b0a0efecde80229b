package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"cardapio/internal/menu"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a menu from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		items, err := readMenu(f, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		return load(cmd, items)
	},
}

// readMenu accepts either a bare array of items or an object with an
// "items" array, and checks every item before anything is written.
func readMenu(r io.Reader, progress io.Writer) ([]*menu.MenuItem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var items []*menu.MenuItem
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &items)
	} else {
		var wrapped struct {
			Items []*menu.MenuItem `json:"items"`
		}
		err = json.Unmarshal(trimmed, &wrapped)
		items = wrapped.Items
	}
	if err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu has no items")
	}

	bar := progressbar.NewOptions(len(items),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("validating"),
		progressbar.OptionShowCount(),
	)
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("item %d is null", i)
		}
		if item.Position == 0 {
			item.Position = i + 1
		}
		if err := menu.ValidateItem(item); err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, item.Name, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	return items, nil
}
