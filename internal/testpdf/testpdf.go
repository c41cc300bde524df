// Package testpdf generates minimal but structurally valid PDFs so tests
// can exercise page splitting and merging without binary fixtures.
package testpdf

import (
	"bytes"
	"fmt"
)

// MinimalDoc returns a valid PDF containing n empty letter-sized pages.
func MinimalDoc(n int) []byte {
	if n < 1 {
		n = 1
	}

	var body bytes.Buffer
	offsets := make([]int, 0, n+3)

	body.WriteString("%PDF-1.4\n")

	writeObj := func(s string) {
		offsets = append(offsets, body.Len())
		body.WriteString(s)
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		kids = fmt.Appendf(kids, "%d 0 R ", 3+i)
	}
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", bytes.TrimSpace(kids), n))

	for i := 0; i < n; i++ {
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n", 3+i))
	}

	xrefOffset := body.Len()
	fmt.Fprintf(&body, "xref\n0 %d\n", len(offsets)+1)
	body.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&body, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&body, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	return body.Bytes()
}
