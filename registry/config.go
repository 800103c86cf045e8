package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML shape of a provider catalog override file:
//
//	text:
//	  - key: openai
//	    default_model: gpt-4o
//	    alt_models: [gpt-4-turbo]
//	    credential_env: OPENAI_API_KEY
//	image:
//	  - key: openai
//	    default_model: dall-e-3
//	    credential_env: OPENAI_API_KEY
//
// A missing section means "keep the built-in catalog for that kind".
type Catalog struct {
	Text  []Entry `yaml:"text"`
	Image []Entry `yaml:"image"`
}

// LoadCatalog reads and parses a catalog override file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading provider catalog %s: %w", path, err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing provider catalog %s: %w", path, err)
	}
	return &catalog, nil
}

// TextRegistry returns the text registry described by the catalog, or the
// built-in default when the text section is absent.
func (c *Catalog) TextRegistry() (*Registry, error) {
	if c == nil || len(c.Text) == 0 {
		return DefaultText(), nil
	}
	return New(KindText, c.Text...)
}

// ImageRegistry returns the image registry described by the catalog, or the
// built-in default when the image section is absent.
func (c *Catalog) ImageRegistry() (*Registry, error) {
	if c == nil || len(c.Image) == 0 {
		return DefaultImage(), nil
	}
	return New(KindImage, c.Image...)
}
