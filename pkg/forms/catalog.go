package forms

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var builtin []byte

// Catalog is a set of form definitions keyed by name.
type Catalog struct {
	forms map[string]Definition
}

type document struct {
	Forms map[string]Definition `yaml:"forms"`
}

// Parse reads definitions from r. Unknown keys are rejected so typos in a
// definition file surface at load time.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoDefinitions
		}
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(doc.Forms) == 0 {
		return nil, ErrNoDefinitions
	}

	c := &Catalog{forms: make(map[string]Definition, len(doc.Forms))}
	for name, def := range doc.Forms {
		def.Name = name
		if err := def.validate(); err != nil {
			return nil, err
		}
		c.forms[name] = def
	}
	return c, nil
}

// Load parses definitions from data.
func Load(data []byte) (*Catalog, error) {
	return Parse(bytes.NewReader(data))
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(builtin)
	if err != nil {
		panic(fmt.Sprintf("forms: built-in definitions: %v", err))
	}
	return c
})

// Default returns the built-in definitions: login, signup, forgot_password,
// reset_password, settings and verify_email.
func Default() *Catalog {
	return defaultCatalog()
}

// Get returns the definition called name.
func (c *Catalog) Get(name string) (Definition, error) {
	def, ok := c.forms[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}
	return def, nil
}

// Names lists the definitions in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
