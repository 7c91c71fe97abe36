package prompts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the prompt catalog lives relative to the working directory.
const DefaultPath = "docs/PROMPTS.yml"

var (
	ErrConfigMissing       = errors.New("missing prompt configuration")
	ErrPromptNotFound      = errors.New("prompt not found")
	ErrMalformedDefinition = errors.New("malformed prompt definition")
)

// Definition is one named prompt template.
type Definition struct {
	Role         string       `yaml:"role"`
	Instructions string       `yaml:"instructions"`
	FocusAreas   []string     `yaml:"focus_areas,omitempty"`
	OutputFormat OutputFormat `yaml:"output_format"`
}

// OutputFormat lists the sections the model is asked to produce.
type OutputFormat struct {
	Sections []string `yaml:"sections"`
}

// Catalog mirrors the YAML document: prompt definitions keyed by name under "prompts".
type Catalog struct {
	Prompts map[string]Definition `yaml:"prompts"`
}

// Load reads the catalog from disk. It is not cached; every call hits the file.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Catalog{}, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return Catalog{}, err
	}
	return Parse(data)
}

// Parse decodes a catalog document. yaml.v3 errors are returned as-is, wrapped.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse prompt catalog: %w", err)
	}
	return c, nil
}

// Lookup returns the definition registered under name.
func (c Catalog) Lookup(name string) (Definition, error) {
	def, ok := c.Prompts[name]
	if !ok {
		if len(c.Prompts) == 0 {
			return Definition{}, fmt.Errorf("%w: %q (catalog is empty)", ErrPromptNotFound, name)
		}
		return Definition{}, fmt.Errorf("%w: %q (available: %s)", ErrPromptNotFound, name, strings.Join(c.Names(), ", "))
	}
	return def, nil
}

// Names returns the prompt names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Prompts))
	for name := range c.Prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the fields the builder cannot do without.
func (d Definition) Validate() error {
	switch {
	case d.Role == "":
		return fmt.Errorf("%w: role is required", ErrMalformedDefinition)
	case d.Instructions == "":
		return fmt.Errorf("%w: instructions is required", ErrMalformedDefinition)
	case len(d.OutputFormat.Sections) == 0:
		return fmt.Errorf("%w: output_format.sections is required", ErrMalformedDefinition)
	}
	return nil
}
