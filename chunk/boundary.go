package chunk

import (
	"strings"
	"unicode/utf8"
)

// splitSentences cuts text after sentence-ending punctuation followed
// by whitespace or the end of the text. Closing quotes and parentheses
// stay with their sentence. Text without terminators comes back whole.
func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(runes) && (runes[j] == '"' || runes[j] == '\'' || runes[j] == ')') {
				j++
			}
			if j < len(runes) && runes[j] != ' ' && runes[j] != '\n' && runes[j] != '\t' {
				continue
			}
			if sentence := strings.TrimSpace(string(runes[start:j])); sentence != "" {
				out = append(out, sentence)
			}
			start = j
			i = j - 1
		}
	}

	if start < len(runes) {
		if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
			out = append(out, tail)
		}
	}

	return out
}

// splitWords hard-splits text on spaces into pieces no longer than
// limit characters, for sentences that alone exceed the maximum chunk
// size. A single word longer than the limit stays whole.
func splitWords(text string, limit int) []string {
	var out []string
	var sb strings.Builder
	size := 0

	for _, word := range strings.Split(text, " ") {
		if word == "" {
			continue
		}
		n := utf8.RuneCountInString(word)
		if size > 0 && size+n+1 > limit {
			out = append(out, sb.String())
			sb.Reset()
			size = 0
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
			size++
		}
		sb.WriteString(word)
		size += n
	}
	if sb.Len() > 0 {
		out = append(out, sb.String())
	}

	return out
}

// countWords splits on the space character only, matching the word
// rule used across the module; tabs and newlines are not separators.
func countWords(s string) int {
	n := 0
	for _, tok := range strings.Split(s, " ") {
		if tok != "" {
			n++
		}
	}
	return n
}
