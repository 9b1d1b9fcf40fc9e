// Package document extracts plain text from uploaded resume and job files.
// Extraction is best-effort: every reader returns the text it could recover,
// or an empty string. Nothing here ever fails hard; an unreadable file is
// simply an empty document.
package document

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type reader func(data []byte) string

var readers = map[string]reader{
	".pdf":  readPDF,
	".docx": readDocx,
	".rtf":  readRTF,
	".txt":  readText,
	".xlsx": readXlsx,
	".xls":  readXlsx,
	".pptx": readPptx,
}

// Read extracts text from the file at path, dispatching on the extension.
// Unknown extensions are treated as plain text. Any failure yields "".
func Read(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	ext := strings.ToLower(filepath.Ext(path))
	read, ok := readers[ext]
	if !ok {
		read = readText
	}

	return read(data)
}

// SupportedExtensions lists the extensions with a dedicated reader.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(readers))
	for ext := range readers {
		exts = append(exts, ext)
	}
	return exts
}

// readText treats the data as plain text. A NUL byte marks a binary payload,
// which yields "" instead of leaking raw bytes into the pipeline.
func readText(data []byte) string {
	if bytes.IndexByte(data, 0) >= 0 {
		return ""
	}
	return normalizeWhitespace(string(data))
}

var (
	reSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlines = regexp.MustCompile(`\n+`)
)

// normalizeWhitespace applies NFKC normalization, collapses whitespace runs
// and trims the result. Newlines are preserved but deduplicated.
func normalizeWhitespace(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	s = reNewlines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
