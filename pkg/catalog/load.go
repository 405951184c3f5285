package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

//go:embed data/planets.json
var embedded embed.FS

// Default returns the built-in catalog: the Sun and the eight planets
// with JPL fact-sheet values.
func Default() (*Catalog, error) {
	raw, err := embedded.ReadFile("data/planets.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}
	return parse(raw)
}

// LoadFile loads a catalog from a JSON file in the same map-keyed shape
// as the embedded catalog.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog at path, or the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func parse(raw []byte) (*Catalog, error) {
	var byName map[string]Body
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{Bodies: make([]Body, 0, len(byName))}
	for _, b := range byName {
		c.Bodies = append(c.Bodies, b)
	}

	// Star first, then planets from the Sun outward.
	sort.Slice(c.Bodies, func(i, j int) bool {
		bi, bj := c.Bodies[i], c.Bodies[j]
		if (bi.Type == BodyTypeStar) != (bj.Type == BodyTypeStar) {
			return bi.Type == BodyTypeStar
		}
		return bi.SemiMajorAxis < bj.SemiMajorAxis
	})

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
