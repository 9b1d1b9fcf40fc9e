package document

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
)

var xmlTags = regexp.MustCompile(`<[^>]+>`)

// readDocx extracts text from the main document part of a DOCX archive.
// Paragraph boundaries become newlines; all other markup is dropped.
func readDocx(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	docXML := readZipPart(zr, "word/document.xml")
	if len(docXML) == 0 {
		return ""
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	text := xmlTags.ReplaceAllString(xml, " ")

	return normalizeWhitespace(text)
}

// readZipPart returns the named archive member, or nil when it is missing or
// unreadable.
func readZipPart(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}
