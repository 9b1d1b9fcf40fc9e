package document

import (
	"archive/zip"
	"bytes"
	"strings"
)

// readXlsx extracts the shared-string text cells from an XLSX archive, one
// cell per line. Legacy binary .xls files are not zip archives and yield "".
func readXlsx(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	strXML := readZipPart(zr, "xl/sharedStrings.xml")
	if len(strXML) == 0 {
		return ""
	}

	xml := string(strXML)
	xml = strings.ReplaceAll(xml, "</si>", "\n")
	text := xmlTags.ReplaceAllString(xml, " ")

	return normalizeWhitespace(text)
}
