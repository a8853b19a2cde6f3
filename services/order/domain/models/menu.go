package models

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

// Topping is a static menu entry. Toppings are not user-editable.
type Topping struct {
	ID    string `yaml:"id"    json:"id"`
	Label string `yaml:"label" json:"label"`
}

// SizeOption pairs a size code with its display label.
type SizeOption struct {
	Code  Size   `yaml:"code"  json:"code"`
	Label string `yaml:"label" json:"label"`
}

// Menu is the fixed catalog of sizes and toppings offered by the form.
type Menu struct {
	Sizes    []SizeOption `yaml:"sizes"    json:"sizes"`
	Toppings []Topping    `yaml:"toppings" json:"toppings"`

	index map[string]int
}

var defaultMenu = mustParseMenu(menuYAML)

// DefaultMenu returns the embedded catalog.
func DefaultMenu() *Menu {
	return defaultMenu
}

// ParseMenu decodes a YAML catalog and checks it for empty or duplicate entries.
func ParseMenu(data []byte) (*Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	if len(m.Toppings) == 0 {
		return nil, fmt.Errorf("menu has no toppings")
	}
	for _, s := range m.Sizes {
		if !s.Code.Valid() {
			return nil, fmt.Errorf("menu size %q: must be S, M or L", s.Code)
		}
	}

	m.index = make(map[string]int, len(m.Toppings))
	for i, t := range m.Toppings {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("menu topping %d has empty id", i)
		}
		if _, dup := m.index[id]; dup {
			return nil, fmt.Errorf("menu topping id %q is duplicated", id)
		}
		m.Toppings[i].ID = id
		m.index[id] = i
	}
	return &m, nil
}

func mustParseMenu(data []byte) *Menu {
	m, err := ParseMenu(data)
	if err != nil {
		panic(err)
	}
	return m
}

// Topping looks up a topping by id.
func (m *Menu) Topping(id string) (Topping, bool) {
	i, ok := m.index[id]
	if !ok {
		return Topping{}, false
	}
	return m.Toppings[i], true
}

// HasTopping reports whether id belongs to the catalog.
func (m *Menu) HasTopping(id string) bool {
	_, ok := m.index[id]
	return ok
}

// SizeLabel returns the display label for a size code, or "" when unknown.
func (m *Menu) SizeLabel(code Size) string {
	for _, s := range m.Sizes {
		if s.Code == code {
			return s.Label
		}
	}
	return ""
}

func (m *Menu) position(id string) int {
	if i, ok := m.index[id]; ok {
		return i
	}
	return len(m.Toppings)
}
