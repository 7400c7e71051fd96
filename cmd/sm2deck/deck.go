package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sky-flux/sm2"
)

// Entry is one vocabulary item in a deck file.
type Entry struct {
	sm2.ReviewItem `yaml:",inline"`
	Term           string `yaml:"term"`
	Definition     string `yaml:"definition,omitempty"`
}

// Deck is the on-disk state managed by sm2deck.
type Deck struct {
	Entries []Entry         `yaml:"entries"`
	Logs    []sm2.ReviewLog `yaml:"logs,omitempty"`
}

// loadDeck reads a deck file. A missing file yields an empty deck.
func loadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Deck{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	var d Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}
	seen := make(map[int64]bool, len(d.Entries))
	for _, e := range d.Entries {
		if seen[e.ID] {
			return nil, fmt.Errorf("load deck %s: duplicate item id %d", path, e.ID)
		}
		seen[e.ID] = true
	}
	return &d, nil
}

// save writes the deck atomically through a temp file in the same directory.
func (d *Deck) save(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sm2deck-*.yaml")
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

// items returns the scheduling state of every entry, index-aligned with Entries.
func (d *Deck) items() []sm2.ReviewItem {
	out := make([]sm2.ReviewItem, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.ReviewItem
	}
	return out
}

func (d *Deck) find(id int64) (int, bool) {
	for i, e := range d.Entries {
		if e.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Deck) nextID() int64 {
	var id int64
	for _, e := range d.Entries {
		id = max(id, e.ID)
	}
	return id + 1
}

// logsFor returns the review history of one item in file order.
func (d *Deck) logsFor(id int64) []sm2.ReviewLog {
	var out []sm2.ReviewLog
	for _, l := range d.Logs {
		if l.ItemID == id {
			out = append(out, l)
		}
	}
	return out
}
