// Package dict holds the named option lists edited in the dictionary
// screens: trade halls, countries, roles and the like.
package dict

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"expoadmin/combo"
)

//go:embed default.toml
var defaultData []byte

// Dictionary is a named option list.
type Dictionary struct {
	Name    string         `toml:"name"`
	Options []combo.Option `toml:"option"`
}

type document struct {
	Dictionary []Dictionary `toml:"dictionary"`
}

// Set is an ordered collection of dictionaries.
type Set struct {
	dicts []Dictionary
	index map[string]int
}

// Load parses a TOML document. An option without a value takes its label
// as value.
func Load(r io.Reader) (*Set, error) {
	var doc document
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dictionaries: %w", err)
	}

	s := &Set{index: make(map[string]int, len(doc.Dictionary))}
	for _, d := range doc.Dictionary {
		if d.Name == "" {
			return nil, fmt.Errorf("dictionary without a name")
		}
		if _, dup := s.index[d.Name]; dup {
			return nil, fmt.Errorf("dictionary %q defined twice", d.Name)
		}
		for i := range d.Options {
			opt := &d.Options[i]
			if opt.Label == "" {
				return nil, fmt.Errorf("dictionary %q option %d: missing label", d.Name, i+1)
			}
			if opt.Value == nil {
				opt.Value = opt.Label
			}
		}
		s.index[d.Name] = len(s.dicts)
		s.dicts = append(s.dicts, d)
	}
	return s, nil
}

// LoadFile reads dictionaries from path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the built-in dictionaries.
func Default() (*Set, error) {
	return Load(bytes.NewReader(defaultData))
}

// Names lists dictionary names in file order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.dicts))
	for _, d := range s.dicts {
		names = append(names, d.Name)
	}
	return names
}

// Lookup returns the dictionary called name.
func (s *Set) Lookup(name string) (Dictionary, bool) {
	i, ok := s.index[name]
	if !ok {
		return Dictionary{}, false
	}
	return s.dicts[i], true
}

// Options returns the options of a dictionary, nil when unknown. The same
// slice is returned on every call.
func (s *Set) Options(name string) []combo.Option {
	d, _ := s.Lookup(name)
	return d.Options
}

// Merge returns a set with the dictionaries of other replacing those of s
// with the same name. New names are appended.
func (s *Set) Merge(other *Set) *Set {
	out := &Set{index: make(map[string]int, len(s.dicts))}
	for _, d := range s.dicts {
		out.index[d.Name] = len(out.dicts)
		out.dicts = append(out.dicts, d)
	}
	if other == nil {
		return out
	}
	for _, d := range other.dicts {
		if i, ok := out.index[d.Name]; ok {
			out.dicts[i] = d
			continue
		}
		out.index[d.Name] = len(out.dicts)
		out.dicts = append(out.dicts, d)
	}
	return out
}
