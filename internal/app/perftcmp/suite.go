package perftcmp

import (
	"fmt"
	"os"

	"github.com/chess-vn/enginebench/internal/domains/entities"
	"gopkg.in/yaml.v3"
)

func LoadSuite(path string) (entities.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.Suite{}, err
	}
	var suite entities.Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return entities.Suite{}, fmt.Errorf("parse suite %s: %w", path, err)
	}
	for i, c := range suite.Positions {
		if c.Depth <= 0 {
			return entities.Suite{}, fmt.Errorf("suite %s: position %d (%s): depth must be positive", path, i, c.Name)
		}
		if c.Name == "" {
			suite.Positions[i].Name = fmt.Sprintf("position %d", i+1)
		}
	}
	return suite, nil
}

// Cases returns the positions not listed in Exclude, in file order.
func Cases(suite entities.Suite) []entities.SuiteCase {
	excluded := make(map[string]bool, len(suite.Exclude))
	for _, name := range suite.Exclude {
		excluded[name] = true
	}
	var cases []entities.SuiteCase
	for _, c := range suite.Positions {
		if !excluded[c.Name] {
			cases = append(cases, c)
		}
	}
	return cases
}
