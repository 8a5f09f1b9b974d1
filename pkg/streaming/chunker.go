package streaming

import "strings"

// sentenceMarker separates sentences once the terminators are tagged.
const sentenceMarker = "|"

// SplitSentences breaks text at sentence boundaries. A sentence ends at
// '.', '!', or '?' followed by a space; the terminator stays with its
// sentence.
func SplitSentences(text string) []string {
	tagged := strings.NewReplacer(
		"? ", "?"+sentenceMarker,
		"! ", "!"+sentenceMarker,
		". ", "."+sentenceMarker,
	).Replace(text)

	parts := strings.Split(tagged, sentenceMarker)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// Chunk packs whole sentences greedily into chunks of at most chunkSize
// characters. A single sentence longer than the budget becomes its own
// oversized chunk rather than being split mid-sentence. Empty text yields
// no chunks.
func Chunk(text string, chunkSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 30
	}

	var chunks []string
	current := ""
	for _, sentence := range SplitSentences(text) {
		if current != "" && len(current)+len(sentence) > chunkSize {
			chunks = append(chunks, current)
			current = sentence + " "
			continue
		}
		current += sentence + " "
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}
