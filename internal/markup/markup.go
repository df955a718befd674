// Package markup extracts design-system observations from static HTML:
// inline style attributes, inline box sizes and data-component names.
package markup

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gridkit/internal/grid"
	"gridkit/internal/logging"
	"gridkit/internal/validator"

	"golang.org/x/net/html"
)

// ComponentAttr names an element's component explicitly.
const ComponentAttr = "data-component"

// Scanner converts parsed HTML into validator components.
type Scanner struct {
	basePx float64
}

// NewScanner creates a scanner resolving rem/em box sizes against basePx.
func NewScanner(basePx float64) *Scanner {
	if basePx <= 0 {
		basePx = grid.DefaultBaseFontSize
	}
	return &Scanner{basePx: basePx}
}

// ScanFile reads and scans one HTML file.
func (s *Scanner) ScanFile(path string) ([]validator.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	components, err := s.Scan(f)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	logging.Markup("Scanned %s: %d components", path, len(components))
	return components, nil
}

// Scan returns one component per element that has a style attribute or a
// data-component name, in document order. Elements without either are
// skipped.
func (s *Scanner) Scan(r io.Reader) ([]validator.Component, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var components []validator.Component
	seen := make(map[string]int)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if c, ok := s.component(n, seen); ok {
				components = append(components, c)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return components, nil
}

func (s *Scanner) component(n *html.Node, seen map[string]int) (validator.Component, bool) {
	style, hasStyle := getAttr(n, "style")
	explicit, hasName := getAttr(n, ComponentAttr)
	if !hasStyle && !hasName {
		return validator.Component{}, false
	}

	tag := n.Data
	role, _ := getAttr(n, "role")

	name := explicit
	if name == "" {
		if id, ok := getAttr(n, "id"); ok && id != "" {
			name = tag + "#" + id
		} else {
			name = tag
		}
	}
	seen[name]++
	if seen[name] > 1 {
		name = name + "[" + strconv.Itoa(seen[name]) + "]"
	}

	decls := ParseDeclarations(style)
	return validator.Component{Name: name, Properties: s.observe(tag, role, decls)}, true
}

// observe maps declarations onto observed properties. Width and height become
// a box observation, a ch-valued width becomes a line-length observation, and
// color plus background-color become a contrast observation.
func (s *Scanner) observe(tag, role string, decls []Declaration) []validator.ObservedProperty {
	var (
		props         []validator.ObservedProperty
		width, height string
		fg, bg        string
		fontSize      string
		fontWeight    string
	)

	for _, d := range decls {
		switch d.Property {
		case "width", "min-width":
			width = d.Value
		case "height", "min-height":
			height = d.Value
		case "max-width":
			if strings.HasSuffix(strings.ToLower(d.Value), "ch") {
				props = append(props, validator.ObservedProperty{
					Property: "characters-per-line",
					Value:    d.Value,
					Element:  tag,
				})
			}
			continue
		case "color":
			fg = d.Value
			continue
		case "background-color", "background":
			bg = d.Value
			continue
		case "font-size":
			fontSize = d.Value
		case "font-weight":
			fontWeight = d.Value
		}
		props = append(props, validator.ObservedProperty{
			Property: d.Property,
			Value:    d.Value,
			Element:  tag,
			Role:     role,
		})
	}

	if strings.HasSuffix(strings.ToLower(width), "ch") {
		props = append(props, validator.ObservedProperty{
			Property: "characters-per-line",
			Value:    width,
			Element:  tag,
		})
	} else if box, ok := s.box(width, height); ok {
		props = append(props, validator.ObservedProperty{
			Property: "box",
			Element:  tag,
			Role:     role,
			Box:      box,
		})
	}

	if fg != "" && bg != "" {
		props = append(props, validator.ObservedProperty{
			Property:   "color",
			Value:      fg,
			Element:    tag,
			Foreground: fg,
			Background: bg,
			LargeText:  s.largeText(fontSize, fontWeight),
		})
	}
	return props
}

func (s *Scanner) box(width, height string) (*validator.Box, bool) {
	if width == "" || height == "" {
		return nil, false
	}
	w, err := grid.ParseLength(width)
	if err != nil {
		return nil, false
	}
	h, err := grid.ParseLength(height)
	if err != nil {
		return nil, false
	}
	return &validator.Box{Width: w.Pixels(s.basePx), Height: h.Pixels(s.basePx)}, true
}

func (s *Scanner) largeText(size, weight string) bool {
	l, err := grid.ParseLength(size)
	if err != nil {
		return false
	}
	px := l.Pixels(s.basePx)
	bold := weight == "bold" || weight == "bolder"
	if n, err := strconv.Atoi(weight); err == nil && n >= 700 {
		bold = true
	}
	return px >= 24 || (px >= 18.66 && bold)
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
