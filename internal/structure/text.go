// Package structure turns raw PDF extractions into the typed document model:
// a text hierarchy, structured tables, and classified visual elements.
package structure

import (
	"strings"
	"unicode"

	"github.com/VyomThaker-2154/Documind-ai/internal/document"
)

// StructureText reconstructs the heading/paragraph hierarchy from per-page
// plain text. Pages yielding no text are skipped; blank lines act as
// paragraph separators and are never emitted.
func StructureText(pages []string) document.TextResult {
	result := document.TextResult{TotalPages: len(pages)}

	for _, text := range pages {
		if text == "" {
			continue
		}

		var buffer []string
		flush := func() {
			if len(buffer) == 0 {
				return
			}
			paragraph := strings.Join(buffer, " ")
			result.Content = append(result.Content, document.TextBlock{
				Type: document.BlockParagraph,
				Text: paragraph,
			})
			result.Statistics.TotalParagraphs++
			result.Statistics.TotalWords += len(strings.Fields(paragraph))
			buffer = nil
		}

		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				flush()
				continue
			}
			if IsHeading(line) {
				flush()
				result.Content = append(result.Content, document.TextBlock{
					Type:  document.BlockHeading,
					Text:  line,
					Level: HeadingLevel(line),
				})
				result.Statistics.TotalHeadings++
			} else {
				buffer = append(buffer, line)
			}
		}
		flush()
	}

	return result
}

// IsHeading reports whether a line reads as a heading. The checks are a
// deliberately permissive OR: false positives are tolerated over missed
// structure.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if len(strings.Fields(line)) > 10 {
		return false
	}
	return isUpperCase(line) ||
		isTitleCase(line) ||
		hasNumberedSection(line) ||
		strings.HasSuffix(line, ":") ||
		(len(line) < 100 && startsUpper(line))
}

// HeadingLevel assigns a hierarchy level (>= 1). Numbered headings take a
// level from their dotted depth ("2.1.3" is level 3); otherwise uppercase is
// 1, short title-case is 2, and everything else 3.
func HeadingLevel(heading string) int {
	heading = strings.TrimSpace(heading)
	if hasNumberedSection(heading) {
		level := 0
		for _, part := range strings.Split(heading, ".") {
			if part != "" && unicode.IsDigit(rune(part[0])) {
				level++
			}
		}
		if level > 0 {
			return level
		}
	}
	if isUpperCase(heading) {
		return 1
	}
	if isTitleCase(heading) && len(heading) < 50 {
		return 2
	}
	return 3
}

// hasNumberedSection reports whether the line contains a nonzero digit
// immediately followed by a period.
func hasNumberedSection(line string) bool {
	for i := 0; i+1 < len(line); i++ {
		if line[i] >= '1' && line[i] <= '9' && line[i+1] == '.' {
			return true
		}
	}
	return false
}

// isUpperCase reports whether the line has cased characters and none of them
// is lowercase.
func isUpperCase(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitleCase reports whether every word starts with an uppercase letter and
// continues in lowercase.
func isTitleCase(s string) bool {
	hasCased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
