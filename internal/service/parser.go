package service

import (
	"strings"

	"wellness-backend/internal/model"
)

// Canonical source names checked against a [SOURCES] block, in enumeration
// order. When the block is absent the first five are checked against the raw
// text instead.
var canonicalSources = []string{"CDC", "WHO", "NIH", "Mayo Clinic", "USDA", "Harvard Health"}

// ParseStructuredResponse extracts the thinking, response and sources
// sections from raw model output. The model is asked to tag its output with
// [THINKING]/[RESPONSE]/[SOURCES] blocks but is not guaranteed to comply, so
// every section has a fallback and the function is total: any input string,
// including empty, yields a usable result.
func ParseStructuredResponse(text string) model.ParsedResponse {
	thinking, hasThinking := extractBlock(text, "THINKING")

	response, hasResponse := extractBlock(text, "RESPONSE")
	if !hasResponse {
		if hasThinking {
			response = strings.TrimSpace(removeBlocks(text, "THINKING"))
		} else {
			response = strings.TrimSpace(text)
		}
	}

	var sources []string
	if block, ok := extractBlock(text, "SOURCES"); ok {
		for _, name := range canonicalSources {
			if strings.Contains(block, name) {
				sources = append(sources, name)
			}
		}
	} else {
		for _, name := range canonicalSources[:5] {
			if strings.Contains(text, name) {
				sources = append(sources, name)
			}
		}
	}

	response = strings.TrimSpace(removeBlocks(response, "SOURCES"))
	response = strings.TrimSpace(stripSourceLines(response))

	return model.ParsedResponse{
		Thinking: thinking,
		Response: response,
		Sources:  sources,
	}
}

// extractBlock returns the trimmed text strictly between the first
// [TAG]...[/TAG] pair. Tags match case-insensitively and the body may span
// lines. An unterminated open tag counts as not found.
func extractBlock(text, tag string) (string, bool) {
	openTag := "[" + tag + "]"
	closeTag := "[/" + tag + "]"

	start := foldIndex(text, openTag)
	if start < 0 {
		return "", false
	}
	inner := text[start+len(openTag):]

	end := foldIndex(inner, closeTag)
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(inner[:end]), true
}

// removeBlocks strips every complete [TAG]...[/TAG] block from text.
func removeBlocks(text, tag string) string {
	openTag := "[" + tag + "]"
	closeTag := "[/" + tag + "]"

	var b strings.Builder
	for {
		start := foldIndex(text, openTag)
		if start < 0 {
			break
		}
		end := foldIndex(text[start+len(openTag):], closeTag)
		if end < 0 {
			break
		}
		b.WriteString(text[:start])
		text = text[start+len(openTag)+end+len(closeTag):]
	}
	b.WriteString(text)
	return b.String()
}

// stripSourceLines truncates each line at a trailing "Source:"/"Sources:"
// citation so it does not leak into the streamed answer.
func stripSourceLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if idx := sourceLabelIndex(line); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// sourceLabelIndex returns the offset of the first "Source:" or "Sources:"
// occurrence in line, or -1.
func sourceLabelIndex(line string) int {
	for i := 0; i+len("Source:") <= len(line); i++ {
		if !strings.HasPrefix(line[i:], "Source") {
			continue
		}
		rest := line[i+len("Source"):]
		if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "s:") {
			return i
		}
	}
	return -1
}

// foldIndex is a case-insensitive strings.Index restricted to byte-wise
// folding, which is exact for the ASCII tag markers used here.
func foldIndex(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
