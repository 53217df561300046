package ingest

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are elements that end a line of visible text. Keeping line
// boundaries matters downstream: form-layout patterns expect a label line
// followed by a value line.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"table": true, "ul": true, "ol": true,
}

func htmlFileText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open html: %w", err)
	}
	defer func() { _ = f.Close() }()

	text, err := VisibleText(f)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return text, nil
}

// VisibleText extracts the visible text of an HTML document, skipping
// scripts and styles and emitting newlines at block element boundaries
func VisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteString("\n")
		}
	}

	walk(doc)
	return buf.String(), nil
}
