package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText([]byte("Jane Doe\r\nSenior Engineer\r\n\r\n\r\n\r\nExperience"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer\n\nExperience", text)
}

func TestExtractText_HTML(t *testing.T) {
	html := `<html><head><style>body { color: red }</style></head>
		<body><h1>Jane Doe</h1><p>Built services handling 10k requests per second.</p>
		<script>console.log("tracking")</script></body></html>`

	text, err := ExtractText([]byte(html), "text/html")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "10k requests per second")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "tracking")
}

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText([]byte("data"), "image/png")
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.DeclaredType)
}

func TestExtractText_CorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"), "application/pdf")
	require.Error(t, err)

	var extractErr *ExtractError
	assert.ErrorAs(t, err, &extractErr)
}

func TestExtractText_CorruptDocx(t *testing.T) {
	docxType := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	_, err := ExtractText([]byte("this is not a docx"), docxType)
	require.Error(t, err)

	var extractErr *ExtractError
	assert.ErrorAs(t, err, &extractErr)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf normalized", "a\r\nb", "a\nb"},
		{"trailing whitespace stripped", "a  \t\nb", "a\nb"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"surrounding whitespace trimmed", "\n\n  a  \n\n", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
