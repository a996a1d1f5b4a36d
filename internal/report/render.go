package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML converts a Markdown report into a standalone HTML page.
func HTML(title, content string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(content), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
body { font-family: sans-serif; line-height: 1.6; max-width: 720px; margin: 0 auto; padding: 32px 16px; }
code { background-color: #f4f4f4; padding: 2px 6px; border-radius: 3px; }
</style>
</head>
<body>
%s</body>
</html>
`, html.EscapeString(title), body.String()), nil
}

var fileSafe = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// FileName builds "<Name_With_Underscores>_status_YYYYMMDD<ext>".
func FileName(petName string, now time.Time, ext string) string {
	return fmt.Sprintf("%s_status_%s%s", fileSafe.Replace(petName), now.Format("20060102"), ext)
}

// Save writes a pet report into dir. With asHTML the Markdown is rendered
// first and the file gets an .html extension.
func Save(dir, petName, content string, now time.Time, asHTML bool) (string, error) {
	ext := ".md"
	if asHTML {
		rendered, err := HTML("Status Report for "+petName, content)
		if err != nil {
			return "", err
		}
		content, ext = rendered, ".html"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(petName, now, ext))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
