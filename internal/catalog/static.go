// Package catalog provides menu sources and the browsable menu view.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/nikolayk812/foodcart/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

type menuFile struct {
	Foods []domain.CatalogItem `yaml:"foods"`
}

// Static serves a fixed menu.
type Static struct {
	items []domain.CatalogItem
}

// Default returns the built-in menu.
func Default() (*Static, error) {
	return Parse(defaultMenu)
}

// LoadFile reads a menu in the same YAML shape as the built-in one.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Static, error) {
	var menu menuFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&menu); err != nil {
		return nil, fmt.Errorf("failed to parse menu: %w", err)
	}

	seen := make(map[int]struct{}, len(menu.Foods))
	for _, item := range menu.Foods {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid menu: %w", err)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("invalid menu: duplicate id[%d]", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return &Static{items: menu.Foods}, nil
}

func (s *Static) GetCatalog(context.Context) ([]domain.CatalogItem, error) {
	return slices.Clone(s.items), nil
}
