package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"

	"ai_diagram_studio/diagram"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
pre { background: #f8fafc; border: 1px solid #e5e7eb; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTML renders the graph as a self-contained page: the Markdown rendition
// converted with goldmark and wrapped in a minimal document shell.
func HTML(g diagram.Graph) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(g)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return fmt.Sprintf(htmlPage, html.EscapeString(g.Title), buf.String()), nil
}
