package dispatch

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkLimit leaves headroom under the common 2000-character
// chat message cap.
const DefaultChunkLimit = 1900

// SplitMessage splits a response into chunks no longer than limit,
// preferring line boundaries. Transports with message size caps send
// the chunks separately; others join them back together.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		// A single oversized line is split hard, never mid-rune.
		for len(line) > limit {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
