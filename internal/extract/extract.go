// Package extract produces plain text from input documents. It understands
// .docx (Office Open XML) and .txt files; everything else is rejected so
// the caller can skip it before dispatch.
package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Common errors returned by the extract package.
var (
	// ErrUnsupportedFormat is returned for file extensions the extractor
	// does not understand.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoDocumentBody is returned when a .docx archive is missing its
	// main document part.
	ErrNoDocumentBody = errors.New("docx archive has no word/document.xml")
)

// Supported reports whether FromFile can handle the given path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".txt":
		return true
	default:
		return false
	}
}

// FromFile extracts the plain text of the document at path.
func FromFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return fromDocx(path)
	case ".txt":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// fromDocx reads the main document part of a .docx archive and joins the
// text of its paragraphs with newlines.
func fromDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = archive.Close() }()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		body, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document body of %s: %w", path, err)
		}
		defer func() { _ = body.Close() }()

		text, err := paragraphText(body)
		if err != nil {
			return "", fmt.Errorf("failed to parse document body of %s: %w", path, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("%s: %w", path, ErrNoDocumentBody)
}

// paragraphText walks the WordprocessingML token stream, collecting the
// character data of <w:t> runs and emitting a newline at each paragraph
// boundary.
func paragraphText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	var inText bool

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return strings.TrimRight(builder.String(), "\n"), nil
}
