package document

import (
	"archive/zip"
	"bytes"
	"sort"
	"strings"
)

// readPptx extracts the text runs from every slide of a PPTX archive, slides
// in name order, paragraphs on their own lines.
func readPptx(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var slides []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides = append(slides, f.Name)
		}
	}
	sort.Strings(slides)

	var parts []string
	for _, name := range slides {
		xml := string(readZipPart(zr, name))
		if xml == "" {
			continue
		}
		xml = strings.ReplaceAll(xml, "</a:p>", "\n")
		parts = append(parts, xmlTags.ReplaceAllString(xml, " "))
	}
	if len(parts) == 0 {
		return ""
	}

	return normalizeWhitespace(strings.Join(parts, "\n"))
}
