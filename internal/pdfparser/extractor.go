package pdfparser

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	rpdf "rsc.io/pdf"
)

// Extractor extracts plain text from a PDF file. The interface allows
// injecting a mock so the parser is testable without real PDF fixtures.
type Extractor interface {
	ExtractText(pdfPath string) (string, error)
}

// RealExtractor extracts text with the rsc.io/pdf reader.
type RealExtractor struct{}

// NewRealExtractor creates a production extractor.
func NewRealExtractor() *RealExtractor {
	return &RealExtractor{}
}

// ExtractText reads the PDF and reconstructs its text line by line. The
// underlying reader panics on malformed files, so the panic is converted to
// an error.
func (e *RealExtractor) ExtractText(pdfPath string) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			text = ""
		}
	}()

	content, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", err
	}

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		builder.WriteString(pageText(page.Content().Text))
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// yTolerance groups fragments whose baselines differ by less than this many
// points into the same output line.
const yTolerance = 2.0

// pageText rebuilds lines from positioned text fragments: fragments are
// bucketed by baseline, lines ordered top to bottom and fragments left to
// right.
func pageText(fragments []rpdf.Text) string {
	if len(fragments) == 0 {
		return ""
	}

	type line struct {
		y         float64
		fragments []rpdf.Text
	}
	var lines []*line

	for _, frag := range fragments {
		var target *line
		for _, l := range lines {
			if frag.Y > l.y-yTolerance && frag.Y < l.y+yTolerance {
				target = l
				break
			}
		}
		if target == nil {
			target = &line{y: frag.Y}
			lines = append(lines, target)
		}
		target.fragments = append(target.fragments, frag)
	}

	// PDF y grows upward.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var builder strings.Builder
	for _, l := range lines {
		sort.Slice(l.fragments, func(i, j int) bool { return l.fragments[i].X < l.fragments[j].X })
		for i, frag := range l.fragments {
			if i > 0 {
				builder.WriteString(" ")
			}
			builder.WriteString(frag.S)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// MockExtractor returns canned text for tests.
type MockExtractor struct {
	Text string
	Err  error
}

// NewMockExtractor creates a MockExtractor with the given text or error.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

// ExtractText implements Extractor.
func (e *MockExtractor) ExtractText(string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Text, nil
}
