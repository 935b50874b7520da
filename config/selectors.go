package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors describes where listing data lives in the catalog markup.
type Selectors struct {
	// Item matches the listing anchor whose title attribute carries the code.
	Item string `yaml:"item"`
	// Name and Price are resolved inside the Item element's parent.
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// DefaultSelectors matches the zklockow.pl category listing layout.
func DefaultSelectors() Selectors {
	return Selectors{
		Item:  "#BasLis .R > .Ri.Na",
		Name:  "a.Ri.Na",
		Price: "a.Ri.Dt > .pr > .pp > span",
	}
}

// LoadSelectors reads a YAML selector profile. Fields left empty keep their
// defaults. An empty path returns the defaults.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("read selectors file: %w", err)
	}

	var override Selectors
	if err := yaml.Unmarshal(data, &override); err != nil {
		return sel, fmt.Errorf("parse selectors yaml: %w", err)
	}

	if override.Item != "" {
		sel.Item = override.Item
	}
	if override.Name != "" {
		sel.Name = override.Name
	}
	if override.Price != "" {
		sel.Price = override.Price
	}
	return sel, nil
}
