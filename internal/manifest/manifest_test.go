package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gridkit/internal/validator"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
components:
  - name: Button
    element: button
    styles:
      padding: 15px
      margin: 16px
      transition-duration: 300ms
    box: {width: 43, height: 50}
    colors: {foreground: "#767676", background: "#ffffff"}
  - name: Article
    properties:
      - property: line-length
        number: 60
        element: p
      - property: z-index
        value: "15"
`

func TestParse(t *testing.T) {
	components, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, components, 2)

	want := validator.Component{
		Name: "Button",
		Properties: []validator.ObservedProperty{
			{Property: "padding", Value: "15px", Element: "button"},
			{Property: "margin", Value: "16px", Element: "button"},
			{Property: "transition-duration", Value: "300ms", Element: "button"},
			{Property: "box", Element: "button", Box: &validator.Box{Width: 43, Height: 50}},
			{Property: "color", Value: "#767676", Element: "button", Foreground: "#767676", Background: "#ffffff"},
		},
	}
	if diff := cmp.Diff(want, components[0]); diff != "" {
		t.Errorf("Button mismatch (-want +got):\n%s", diff)
	}

	article := components[1]
	assert.Equal(t, "Article", article.Name)
	require.Len(t, article.Properties, 2)
	require.NotNil(t, article.Properties[0].Number)
	assert.Equal(t, 60.0, *article.Properties[0].Number)
	assert.Equal(t, "p", article.Properties[0].Element)
}

func TestParse_ValidatesButtonScenario(t *testing.T) {
	components, err := Parse([]byte(sample))
	require.NoError(t, err)

	res := validator.Default().Validate(components[0].Properties)
	require.Len(t, res.Errors, 2)
	assert.Contains(t, res.Errors[0], "padding")
	assert.Contains(t, res.Errors[1], "43x50")
	assert.Empty(t, res.Warnings)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "components: [unclosed"},
		{"missing name", "components:\n  - styles: {padding: 8px}\n"},
		{"styles not a mapping", "components:\n  - name: X\n    styles: [8px]\n"},
		{"nested style value", "components:\n  - name: X\n    styles:\n      padding: {top: 8px}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("components: []\n"))
	assert.True(t, errors.Is(err, ErrNoComponents))
}

func TestLoadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(src, []byte(sample), 0644))

	components, err := Load(src)
	require.NoError(t, err)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, Write(out, components))

	again, err := Load(out)
	require.NoError(t, err)
	if diff := cmp.Diff(components, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
