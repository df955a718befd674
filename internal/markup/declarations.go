package markup

import (
	"strings"

	"github.com/gorilla/css/scanner"
)

// Declaration is one "property: value" pair from a style attribute.
type Declaration struct {
	Property string
	Value    string
}

// ParseDeclarations tokenizes an inline style attribute. Property names are
// lowercased; values keep their spelling with whitespace collapsed.
// "!important" is dropped. Malformed declarations are skipped.
func ParseDeclarations(style string) []Declaration {
	var (
		decls    []Declaration
		property string
		value    strings.Builder
		inValue  bool
		broken   bool
	)

	flush := func() {
		v := strings.TrimSpace(value.String())
		v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
		if property != "" && inValue && !broken && v != "" {
			decls = append(decls, Declaration{Property: property, Value: v})
		}
		property, inValue, broken = "", false, false
		value.Reset()
	}

	s := scanner.New(style)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			flush()
			return decls
		case scanner.TokenComment:
			continue
		}

		if tok.Type == scanner.TokenChar && tok.Value == ";" {
			flush()
			continue
		}

		if !inValue {
			switch {
			case tok.Type == scanner.TokenS:
			case tok.Type == scanner.TokenIdent && property == "":
				property = strings.ToLower(tok.Value)
			case tok.Type == scanner.TokenChar && tok.Value == ":" && property != "":
				inValue = true
			default:
				broken = true
			}
			continue
		}

		if tok.Type == scanner.TokenS {
			value.WriteByte(' ')
			continue
		}
		value.WriteString(tok.Value)
	}
}
