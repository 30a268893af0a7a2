// Package pdfmeta extracts paper metadata from local PDF files so the
// import command can seed a bibliography without a search query.
package pdfmeta

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"scholarbot/internal/paper"
)

// doiRe matches DOIs of the form 10.XXXX/suffix.
var doiRe = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// yearRe matches plausible publication years.
var yearRe = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

// metadataPages is how many leading pages are scanned; titles, DOIs,
// and years almost always appear on the first page.
const metadataPages = 3

// Extract reads the leading pages of a PDF and returns a best-effort
// paper record. Title falls back to the file name when no usable line
// is found; the record's URL carries the DOI resolver link if a DOI
// was detected.
func Extract(path string) (paper.Record, error) {
	text, err := leadingText(path, metadataPages)
	if err != nil {
		return paper.Record{}, err
	}

	rec := paper.Record{
		Title: firstTitleLine(text),
		Year:  firstYear(text),
	}
	if rec.Title == "" {
		rec.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if doi := doiRe.FindString(text); doi != "" {
		rec.URL = "https://doi.org/" + strings.TrimRight(doi, ".,;")
	}
	return rec, nil
}

// leadingText extracts plain text from the first maxPages pages.
func leadingText(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// firstTitleLine returns the first substantial line, skipping running
// headers and page furniture.
func firstTitleLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// isHeaderLine filters lines that are clearly not a title.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range []string{"preprint", "arxiv", "vol.", "no.", "doi:", "copyright", "©", "page "} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	// Mostly-numeric lines are dates or page numbers.
	digits := 0
	for _, r := range line {
		if '0' <= r && r <= '9' {
			digits++
		}
	}
	return digits > len(line)/2
}

// firstYear returns the first plausible publication year, or 0.
func firstYear(text string) int {
	if m := yearRe.FindString(text); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			return y
		}
	}
	return 0
}
