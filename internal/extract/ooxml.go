package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jchen042/batch-translator/internal/models"
)

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func docxText(content []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: opening docx: %v", models.ErrMalformedDocument, err)
	}

	data, err := readZipEntry(r, "word/document.xml")
	if err != nil {
		return "", err
	}

	return ooxmlRuns(data, "p", "t")
}

func pptxText(content []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: opening pptx: %v", models.ErrMalformedDocument, err)
	}

	// Slide entries are not ordered inside the archive; sort by number.
	slides := make(map[int]*zip.File)
	var nums []int
	for _, f := range r.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		slides[n] = f
		nums = append(nums, n)
	}
	sort.Ints(nums)

	var parts []string
	for _, n := range nums {
		rc, err := slides[n].Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		text, err := ooxmlRuns(data, "p", "t")
		if err != nil {
			return "", err
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

func readZipEntry(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", models.ErrMalformedDocument, name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s not found", models.ErrMalformedDocument, name)
}

// ooxmlRuns walks the XML token stream collecting the character data of
// every <textElem> run, emitting a newline at the end of each <paraElem>
// block. Both WordprocessingML and DrawingML use this shape (w:p/w:t and
// a:p/a:t).
func ooxmlRuns(data []byte, paraElem, textElem string) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", models.ErrMalformedDocument, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case textElem:
				inText = false
			case paraElem:
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
