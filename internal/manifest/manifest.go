// Package manifest loads component observations from YAML files.
//
// A manifest lists components in order. Each component may give its styles
// as a mapping (kept in file order), a rendered box, a colour pair and any
// number of raw observed properties:
//
//	components:
//	  - name: Button
//	    element: button
//	    styles:
//	      padding: 15px
//	      transition-duration: 300ms
//	    box: {width: 43, height: 50}
//	    colors: {foreground: "#767676", background: "#ffffff"}
//	    properties:
//	      - {property: line-length, number: 60, element: p}
package manifest

import (
	"errors"
	"fmt"
	"os"

	"gridkit/internal/validator"

	"gopkg.in/yaml.v3"
)

// ErrNoComponents is returned for a manifest that declares nothing.
var ErrNoComponents = errors.New("manifest declares no components")

// Manifest is the decoded file.
type Manifest struct {
	Components []Entry `yaml:"components"`
}

// Entry is one component as written in a manifest.
type Entry struct {
	Name       string                       `yaml:"name"`
	Element    string                       `yaml:"element,omitempty"`
	Role       string                       `yaml:"role,omitempty"`
	Styles     yaml.Node                    `yaml:"styles,omitempty"`
	Box        *validator.Box               `yaml:"box,omitempty"`
	Colors     *Colors                      `yaml:"colors,omitempty"`
	Properties []validator.ObservedProperty `yaml:"properties,omitempty"`
}

// Colors is a foreground/background pair checked for contrast.
type Colors struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	LargeText  bool   `yaml:"large_text,omitempty"`
}

// Load reads and decodes a manifest file.
func Load(path string) ([]validator.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	components, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return components, nil
}

// Parse decodes manifest bytes into components, preserving declaration order.
func Parse(data []byte) ([]validator.Component, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Components) == 0 {
		return nil, ErrNoComponents
	}

	components := make([]validator.Component, 0, len(m.Components))
	for i, e := range m.Components {
		c, err := e.Component()
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		components = append(components, c)
	}
	return components, nil
}

// Component flattens the entry into observations: styles, then box, then
// colours, then raw properties. Element and role are inherited by every
// observation that leaves them empty.
func (e Entry) Component() (validator.Component, error) {
	if e.Name == "" {
		return validator.Component{}, errors.New("missing name")
	}

	var props []validator.ObservedProperty

	styles, err := orderedStyles(e.Styles)
	if err != nil {
		return validator.Component{}, fmt.Errorf("%s: styles: %w", e.Name, err)
	}
	for _, s := range styles {
		props = append(props, validator.ObservedProperty{Property: s[0], Value: s[1]})
	}

	if e.Box != nil {
		box := *e.Box
		props = append(props, validator.ObservedProperty{Property: "box", Box: &box})
	}

	if e.Colors != nil {
		props = append(props, validator.ObservedProperty{
			Property:   "color",
			Value:      e.Colors.Foreground,
			Foreground: e.Colors.Foreground,
			Background: e.Colors.Background,
			LargeText:  e.Colors.LargeText,
		})
	}

	props = append(props, e.Properties...)

	for i := range props {
		if props[i].Element == "" {
			props[i].Element = e.Element
		}
		if props[i].Role == "" {
			props[i].Role = e.Role
		}
	}
	return validator.Component{Name: e.Name, Properties: props}, nil
}

// orderedStyles reads a YAML mapping as ordered key/value pairs. Scalar
// values are taken verbatim, so 15px, 8 and "1.5rem" all survive unchanged.
func orderedStyles(n yaml.Node) ([][2]string, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	pairs := make([][2]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s must be a scalar", v.Line, k.Value)
		}
		pairs = append(pairs, [2]string{k.Value, v.Value})
	}
	return pairs, nil
}

// Write encodes components as a manifest using raw properties only.
func Write(path string, components []validator.Component) error {
	m := Manifest{Components: make([]Entry, 0, len(components))}
	for _, c := range components {
		m.Components = append(m.Components, Entry{Name: c.Name, Properties: c.Properties})
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
