package docs

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

// Formats accepted by the summarizer.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// maxPDFPages caps how many pages feed into one summary.
const maxPDFPages = 20

// FormatFor maps a filename extension to a document format.
func FormatFor(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported document type %q: %w", filepath.Ext(filename), domerrors.ErrInvalidInput)
	}
}

// Extract pulls the text out of a document. The page count is 1 for
// plain formats and the real page count for PDFs.
func Extract(r io.Reader, format string) (string, int, error) {
	switch format {
	case FormatText, FormatMarkdown:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", 0, fmt.Errorf("read document: %w", err)
		}
		return string(data), 1, nil
	case FormatPDF:
		data, err := io.ReadAll(r)
		if err != nil {
			return "", 0, fmt.Errorf("read document: %w", err)
		}
		return extractPDF(data)
	default:
		return "", 0, fmt.Errorf("unsupported format %q: %w", format, domerrors.ErrInvalidInput)
	}
}

// pdfTextOps matches the string arguments of PDF text-showing
// operators (Tj and TJ) in a page content stream.
var pdfTextOps = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*'?|(?:Tj|TJ)`)

func extractPDF(data []byte) (string, int, error) {
	rs := bytes.NewReader(data)

	pages, err := api.PageCount(rs, nil)
	if err != nil {
		return "", 0, fmt.Errorf("read pdf: %w", domerrors.ErrInvalidInput)
	}

	limit := pages
	if limit > maxPDFPages {
		limit = maxPDFPages
	}

	// Best-effort text recovery from the raw content streams. Scanned
	// or heavily encoded PDFs may yield little, which still gives the
	// summarizer the page count to report.
	var sb strings.Builder
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("seek pdf: %w", err)
	}
	ctx, err := api.ReadValidateAndOptimize(rs, nil)
	if err != nil {
		return "", pages, nil
	}
	for page := 1; page <= limit; page++ {
		content, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(content)
		if err != nil {
			continue
		}
		for _, m := range pdfTextOps.FindAllStringSubmatch(string(raw), -1) {
			if len(m) > 1 && m[1] != "" {
				sb.WriteString(unescapePDFString(m[1]))
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), pages, nil
}

// unescapePDFString resolves the escape sequences allowed inside PDF
// literal strings.
func unescapePDFString(s string) string {
	replacer := strings.NewReplacer(
		`\(`, "(",
		`\)`, ")",
		`\\`, `\`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(s)
}
