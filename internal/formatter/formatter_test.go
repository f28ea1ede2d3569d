package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticContent struct{}

func (staticContent) ToHTML() (string, error)     { return "<p>html</p>", nil }
func (staticContent) ToText() (string, error)     { return "text", nil }
func (staticContent) ToMarkdown() (string, error) { return "# md", nil }
func (staticContent) ToJSON() ([]byte, error)     { return []byte(`{"a":1}`), nil }
func (staticContent) ToCSV() (string, error)      { return "a\n1\n", nil }

func TestFormat(t *testing.T) {
	want := map[string]string{
		"html":     "<p>html</p>",
		"text":     "text",
		"markdown": "# md",
		"JSON":     `{"a":1}`,
		"csv":      "a\n1\n",
	}
	for format, expected := range want {
		got, err := Format(staticContent{}, format)
		require.NoError(t, err, format)
		assert.Equal(t, expected, got, format)
	}

	_, err := Format(staticContent{}, "xml")
	assert.Error(t, err)
}

func TestInferFormat(t *testing.T) {
	assert.Equal(t, "markdown", InferFormat("fedor.md"))
	assert.Equal(t, "json", InferFormat("out/FEDOR.JSON"))
	assert.Equal(t, "csv", InferFormat("sherdog-fighters.csv"))
	assert.Equal(t, "", InferFormat("noext"))
}
