package menu

import (
	"time"

	"cardapio/internal/core"
)

// Complement is an optional or required add-on inside a ComplementGroup.
// Price is the incremental price as a comma-decimal string ("5,00").
type Complement struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
}

// ComplementGroup is a titled set of complements for a MenuItem.
// MaxSelections == 0 means unlimited.
type ComplementGroup struct {
	Title         string       `json:"title"`
	Required      bool         `json:"required"`
	MaxSelections int          `json:"max_selections,omitempty"`
	Complements   []Complement `json:"complements"`
}

// MenuItem is a catalog entry. The cart treats it as immutable.
type MenuItem struct {
	ID               string            `json:"id,omitempty"`
	RestaurantID     string            `json:"restaurant_id,omitempty"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Price            string            `json:"price"`
	Image            string            `json:"image,omitempty"`
	Category         string            `json:"category"`
	Categories       []string          `json:"categories,omitempty"`
	Tags             []string          `json:"tags,omitempty"`
	ComplementGroups []ComplementGroup `json:"complement_groups,omitempty"`
	Featured         bool              `json:"featured,omitempty"`
	Position         int               `json:"position,omitempty"`
	CreatedAt        *time.Time        `json:"created_at,omitempty"`
}

// Group returns the complement group with the given title.
func (m *MenuItem) Group(title string) (*ComplementGroup, bool) {
	for i := range m.ComplementGroups {
		if m.ComplementGroups[i].Title == title {
			return &m.ComplementGroups[i], true
		}
	}
	return nil, false
}

// Complement looks up a complement by name inside the group.
func (g *ComplementGroup) Complement(name string) (*Complement, bool) {
	for i := range g.Complements {
		if g.Complements[i].Name == name {
			return &g.Complements[i], true
		}
	}
	return nil, false
}

// normalize replaces nil slices so postgres NOT NULL array columns accept them.
func (m *MenuItem) normalize() {
	if m.Categories == nil {
		m.Categories = []string{}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.ComplementGroups == nil {
		m.ComplementGroups = []ComplementGroup{}
	}
	if m.Category == "" && len(m.Categories) > 0 {
		m.Category = m.Categories[0]
	}
}

// Menu is the public view of a restaurant's catalog.
type Menu struct {
	Restaurant *core.RestaurantInfo `json:"restaurant"`
	Categories []string             `json:"categories"`
	Items      []*MenuItem          `json:"items"`
}
