package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dkrasnov/claimflow/internal/cache"
)

// ErrUnsupportedFormat is returned for document types the converter does
// not handle. Callers surface it to the user instead of degrading.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extensions lists the document types the converter accepts
var Extensions = []string{".txt", ".md", ".text", ".pdf", ".html", ".htm"}

// Converter turns claim documents into UTF-8 text: path in, text out or a
// decode failure. Converted text is cached keyed by path and mtime.
type Converter struct {
	cache    cache.Cache // nil disables caching
	ttl      time.Duration
	maxBytes int64
}

// NewConverter creates a converter. A nil cache disables caching.
func NewConverter(c cache.Cache, ttl time.Duration, maxBytes int64) *Converter {
	return &Converter{cache: c, ttl: ttl, maxBytes: maxBytes}
}

// Text converts the document at path into plain text
func (c *Converter) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat document: %w", err)
	}
	if c.maxBytes > 0 && info.Size() > c.maxBytes {
		return "", fmt.Errorf("document too large: %d bytes (limit %d)", info.Size(), c.maxBytes)
	}

	key := cache.Key(path, info.ModTime())
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			zap.L().Debug("converted text served from cache", zap.String("path", path))
			return string(cached), nil
		}
	}

	text, err := c.convert(path)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, []byte(text), c.ttl)
	}

	return text, nil
}

func (c *Converter) convert(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return string(data), nil

	case ".pdf":
		return pdfText(path)

	case ".html", ".htm":
		return htmlFileText(path)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
