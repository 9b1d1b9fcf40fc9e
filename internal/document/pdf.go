package document

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// readPDF extracts plain text from PDF data. The pdf library panics on some
// malformed files, so recovery is part of the best-effort contract.
func readPDF(data []byte) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	rs, err := r.GetPlainText()
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return ""
	}

	return normalizeWhitespace(buf.String())
}
