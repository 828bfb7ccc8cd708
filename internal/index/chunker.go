package index

import "strings"

// SplitText breaks the corpus into chunks of at most chunkSize characters
// with roughly overlap characters repeated between consecutive chunks.
// Splits happen preferentially at paragraph boundaries, then sentence
// boundaries, with hard cuts as a last resort.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = 1500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 8
	}

	paragraphs := splitByParagraphs(text)

	var result []string
	var current strings.Builder

	for _, para := range paragraphs {
		// A single paragraph over the target gets sentence-split on its own.
		if len(para) > chunkSize {
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			result = append(result, splitBySentences(para, chunkSize, overlap)...)
			continue
		}

		if current.Len() > 0 && current.Len()+2+len(para) > chunkSize {
			result = append(result, current.String())
			tail := overlapTail(current.String(), overlap)
			current.Reset()
			current.WriteString(tail)
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}

	return result
}

func splitByParagraphs(text string) []string {
	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences packs sentences into chunks, hard-cutting any sentence
// that alone exceeds the target.
func splitBySentences(text string, chunkSize, overlap int) []string {
	var result []string
	var current strings.Builder

	for _, sent := range splitSentences(text) {
		if len(sent) > chunkSize {
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			result = append(result, hardCut(sent, chunkSize, overlap)...)
			continue
		}

		if current.Len() > 0 && current.Len()+1+len(sent) > chunkSize {
			result = append(result, current.String())
			tail := overlapTail(current.String(), overlap)
			current.Reset()
			current.WriteString(tail)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// splitSentences does basic sentence splitting on terminal punctuation
// followed by a space.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}
	return sentences
}

// hardCut slices text into fixed windows stepping chunkSize-overlap.
func hardCut(text string, chunkSize, overlap int) []string {
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}
	var result []string
	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		result = append(result, text[start:end])
		if end == len(text) {
			break
		}
	}
	return result
}

// overlapTail returns the last n characters, extended to the nearest word
// boundary on the left.
func overlapTail(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return ""
	}
	tail := text[len(text)-n:]
	if idx := strings.IndexAny(tail, " \n"); idx >= 0 {
		tail = tail[idx+1:]
	}
	return strings.TrimSpace(tail)
}
