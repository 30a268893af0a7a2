package citation

import (
	"fmt"
	"strings"
	"time"

	"scholarbot/internal/paper"
)

// timeNow is overridable in tests so access dates stay deterministic.
var timeNow = time.Now

// maxListedAuthors is the cutoff above which the author list collapses
// to "first author et al.".
const maxListedAuthors = 3

// Format renders a single paper in the given style. It is pure apart
// from the access date used by the MLA and Harvard locator clauses.
func Format(p *paper.Paper, style Style) (string, error) {
	switch style {
	case APA:
		return formatAPA(p), nil
	case MLA:
		return formatMLA(p), nil
	case Chicago:
		return formatChicago(p), nil
	case Harvard:
		return formatHarvard(p), nil
	case IEEE:
		return formatIEEE(p), nil
	}
	return "", fmt.Errorf("style %q: %w", style, paper.ErrUnsupportedStyle)
}

// FormatBibliography renders all papers in registration order, numbered
// 1..N. IEEE entries use the bracketed reference form.
func FormatBibliography(papers []*paper.Paper, style Style) ([]string, error) {
	entries := make([]string, 0, len(papers))
	for i, p := range papers {
		entry, err := Format(p, style)
		if err != nil {
			return nil, err
		}
		if style == IEEE {
			entries = append(entries, fmt.Sprintf("[%d] %s", i+1, entry))
		} else {
			entries = append(entries, fmt.Sprintf("%d. %s", i+1, entry))
		}
	}
	return entries, nil
}

func formatAPA(p *paper.Paper) string {
	var b strings.Builder

	authors := apaAuthors(p.Authors)
	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	} else {
		b.WriteString(p.Title)
		b.WriteString(". ")
	}

	if p.HasYear() {
		fmt.Fprintf(&b, "(%d). ", p.Year)
	} else {
		b.WriteString("(n.d.). ")
	}

	if authors != "" {
		b.WriteString(p.Title)
		b.WriteString(". ")
	}
	if p.Venue != "" {
		b.WriteString(p.Venue)
		b.WriteString(". ")
	}
	if p.URL != "" {
		b.WriteString("Retrieved from ")
		b.WriteString(p.URL)
	}
	return strings.TrimSpace(b.String())
}

func formatMLA(p *paper.Paper) string {
	var b strings.Builder

	if authors := mlaAuthors(p.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(". ")
	}
	b.WriteString("\"" + p.Title + ".\" ")
	if p.Venue != "" {
		b.WriteString(p.Venue)
		b.WriteString(", ")
	}
	if p.HasYear() {
		fmt.Fprintf(&b, "%d. ", p.Year)
	} else {
		b.WriteString("n.d. ")
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "Web. Accessed %s. %s", timeNow().Format("2 Jan. 2006"), p.URL)
	}
	return strings.TrimSpace(b.String())
}

func formatChicago(p *paper.Paper) string {
	var b strings.Builder

	if authors := chicagoAuthors(p.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(". ")
	}
	b.WriteString("\"" + p.Title + ".\" ")
	if p.Venue != "" {
		b.WriteString(p.Venue)
		b.WriteString(", ")
	}
	if p.HasYear() {
		fmt.Fprintf(&b, "%d. ", p.Year)
	} else {
		b.WriteString("n.d. ")
	}
	if p.URL != "" {
		b.WriteString(p.URL)
		b.WriteString(".")
	}
	return strings.TrimSpace(b.String())
}

func formatHarvard(p *paper.Paper) string {
	var b strings.Builder

	if authors := harvardAuthors(p.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	}
	if p.HasYear() {
		fmt.Fprintf(&b, "(%d). ", p.Year)
	} else {
		b.WriteString("(n.d.). ")
	}
	b.WriteString(p.Title)
	b.WriteString(". ")
	if p.Venue != "" {
		b.WriteString(p.Venue)
		b.WriteString(". ")
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "Available at: %s (Accessed: %s).", p.URL, timeNow().Format("2 January 2006"))
	}
	return strings.TrimSpace(b.String())
}

func formatIEEE(p *paper.Paper) string {
	var b strings.Builder

	if authors := ieeeAuthors(p.Authors); authors != "" {
		b.WriteString(authors)
		b.WriteString(", ")
	}
	b.WriteString("\"" + p.Title + ",\" ")
	if p.Venue != "" {
		b.WriteString(p.Venue)
		if p.HasYear() {
			b.WriteString(", ")
		} else {
			b.WriteString(". ")
		}
	}
	// IEEE omits an unknown year rather than writing "n.d."
	if p.HasYear() {
		fmt.Fprintf(&b, "%d. ", p.Year)
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "[Online]. Available: %s", p.URL)
	}
	return strings.TrimSpace(b.String())
}

// apaName renders "Last, F. M." from a free-form author string.
func apaName(author string) string {
	n := paper.ParseName(author)
	if initials := n.Initials(); initials != "" {
		return n.Last + ", " + initials
	}
	return n.Last
}

func apaAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return ""
	case len(authors) == 1:
		return apaName(authors[0])
	case len(authors) > maxListedAuthors:
		return apaName(authors[0]) + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = apaName(a)
	}
	return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
}

// mlaName keeps the given order: "First Last".
func mlaName(author string) string {
	n := paper.ParseName(author)
	if n.First != "" {
		return n.First + " " + n.Last
	}
	return n.Last
}

func mlaAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return ""
	case len(authors) == 1:
		return mlaName(authors[0])
	case len(authors) > maxListedAuthors:
		return mlaName(authors[0]) + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = mlaName(a)
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// chicagoAuthors inverts the first author only: "Smith, John, and Jane Doe".
func chicagoAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}

	first := paper.ParseName(authors[0])
	lead := first.Last
	if first.First != "" {
		lead = first.Last + ", " + first.First
	}

	switch {
	case len(authors) == 1:
		return lead
	case len(authors) > maxListedAuthors:
		return lead + ", et al."
	}

	rest := make([]string, 0, len(authors)-1)
	for _, a := range authors[1:] {
		rest = append(rest, mlaName(a))
	}
	if len(rest) == 1 {
		return lead + " and " + rest[0]
	}
	return lead + ", " + strings.Join(rest[:len(rest)-1], ", ") + ", and " + rest[len(rest)-1]
}

func harvardAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return ""
	case len(authors) == 1:
		return apaName(authors[0])
	case len(authors) > maxListedAuthors:
		return apaName(authors[0]) + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = apaName(a)
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// ieeeName renders initials first: "J. A. Smith".
func ieeeName(author string) string {
	n := paper.ParseName(author)
	if initials := n.Initials(); initials != "" {
		return initials + " " + n.Last
	}
	return n.Last
}

func ieeeAuthors(authors []string) string {
	switch {
	case len(authors) == 0:
		return ""
	case len(authors) > maxListedAuthors:
		return ieeeName(authors[0]) + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = ieeeName(a)
	}
	return strings.Join(names, ", ")
}
