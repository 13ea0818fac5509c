package tenantguard

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tenantguard/pkg/access"
)

// Field describes one collection field in the host's configuration model.
// FilterOptions, when set, restricts which related documents the field may
// reference per request.
type Field struct {
	Name          string      `yaml:"name" json:"name"`
	Type          string      `yaml:"type" json:"type"`
	RelationTo    string      `yaml:"relationTo,omitempty" json:"relationTo,omitempty"`
	HasMany       bool        `yaml:"hasMany,omitempty" json:"hasMany,omitempty"`
	Hidden        bool        `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	FilterOptions access.Rule `yaml:"-" json:"-"`
}

// Collection is the host-side collection configuration the plugin
// decorates: a slug, its fields, and one optional access rule per
// operation kind.
type Collection struct {
	Slug   string       `yaml:"slug" json:"slug"`
	Fields []Field      `yaml:"fields,omitempty" json:"fields,omitempty"`
	Access access.Rules `yaml:"-" json:"-"`
}

// HasField reports whether the collection defines a field by name.
func (c Collection) HasField(name string) bool {
	for _, f := range c.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// CollectionsFromYAML reads a declarative collection list. Access rules
// are code, not data: they are attached after loading, either by the host
// or by Plugin.Apply.
func CollectionsFromYAML(r io.Reader) ([]Collection, error) {
	var doc struct {
		Collections []Collection `yaml:"collections"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Join(ErrInvalidCollectionsYAML, err)
	}
	if len(doc.Collections) == 0 {
		return nil, ErrInvalidCollectionsYAML
	}
	for _, col := range doc.Collections {
		if col.Slug == "" {
			return nil, errors.Join(ErrInvalidCollectionsYAML, errors.New("collection without slug"))
		}
	}
	return doc.Collections, nil
}
