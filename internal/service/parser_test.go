package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullyTagged(t *testing.T) {
	raw := "[THINKING]A[/THINKING][RESPONSE]B[/RESPONSE][SOURCES]CDC, WHO[/SOURCES]"

	parsed := ParseStructuredResponse(raw)

	assert.Equal(t, "A", parsed.Thinking)
	assert.Equal(t, "B", parsed.Response)
	assert.Equal(t, []string{"CDC", "WHO"}, parsed.Sources)
}

func TestParse_NoTags(t *testing.T) {
	parsed := ParseStructuredResponse("Drink water and rest.")

	assert.Empty(t, parsed.Thinking)
	assert.Equal(t, "Drink water and rest.", parsed.Response)
	assert.Nil(t, parsed.Sources)
}

func TestParse_ThinkingWithoutResponseTag(t *testing.T) {
	parsed := ParseStructuredResponse("[THINKING]plan[/THINKING]final answer here")

	assert.Equal(t, "plan", parsed.Thinking)
	assert.Equal(t, "final answer here", parsed.Response)
}

func TestParse_EmptyInput(t *testing.T) {
	parsed := ParseStructuredResponse("")

	assert.Empty(t, parsed.Thinking)
	assert.Empty(t, parsed.Response)
	assert.Nil(t, parsed.Sources)
}

func TestParse_CaseInsensitiveTags(t *testing.T) {
	raw := "[thinking]plan[/Thinking][Response]answer[/response]"

	parsed := ParseStructuredResponse(raw)

	assert.Equal(t, "plan", parsed.Thinking)
	assert.Equal(t, "answer", parsed.Response)
}

func TestParse_MultilineBlocks(t *testing.T) {
	raw := "[THINKING]\nfirst line\nsecond line\n[/THINKING]\n[RESPONSE]\nthe answer\n[/RESPONSE]"

	parsed := ParseStructuredResponse(raw)

	assert.Equal(t, "first line\nsecond line", parsed.Thinking)
	assert.Equal(t, "the answer", parsed.Response)
}

func TestParse_UnterminatedThinkingIsNotFound(t *testing.T) {
	parsed := ParseStructuredResponse("[THINKING]never closed, just an answer")

	assert.Empty(t, parsed.Thinking)
	assert.Equal(t, "[THINKING]never closed, just an answer", parsed.Response)
}

func TestParse_UnterminatedResponseFallsBack(t *testing.T) {
	parsed := ParseStructuredResponse("[THINKING]plan[/THINKING][RESPONSE]cut off")

	assert.Equal(t, "plan", parsed.Thinking)
	// The thinking block is removed from the fallback text; the dangling
	// open tag stays since it never formed a block.
	assert.Equal(t, "[RESPONSE]cut off", parsed.Response)
}

func TestParse_SourcesBlockPreservesCanonicalOrder(t *testing.T) {
	raw := "[RESPONSE]ok[/RESPONSE][SOURCES]Mayo Clinic, CDC, Harvard Health[/SOURCES]"

	parsed := ParseStructuredResponse(raw)

	// Canonical enumeration order, not the order they appear in the block.
	assert.Equal(t, []string{"CDC", "Mayo Clinic", "Harvard Health"}, parsed.Sources)
}

func TestParse_SourcesFallbackScansRawText(t *testing.T) {
	raw := "According to the NIH and the CDC, sleep matters."

	parsed := ParseStructuredResponse(raw)

	assert.Equal(t, []string{"CDC", "NIH"}, parsed.Sources)
}

func TestParse_SourcesFallbackExcludesHarvardHealth(t *testing.T) {
	// Harvard Health is only canonical inside a [SOURCES] block.
	parsed := ParseStructuredResponse("See Harvard Health for details.")

	assert.Nil(t, parsed.Sources)
}

func TestParse_ResidualSourcesBlockStrippedFromResponse(t *testing.T) {
	raw := "[RESPONSE]Eat well.\n[SOURCES]CDC[/SOURCES][/RESPONSE]"

	parsed := ParseStructuredResponse(raw)

	assert.Equal(t, "Eat well.", parsed.Response)
	assert.NotContains(t, parsed.Response, "[SOURCES]")
}

func TestParse_TrailingSourceLinesStripped(t *testing.T) {
	for _, raw := range []string{
		"[RESPONSE]Stay hydrated.\nSources: CDC, WHO[/RESPONSE]",
		"[RESPONSE]Stay hydrated.\nSource: CDC[/RESPONSE]",
	} {
		parsed := ParseStructuredResponse(raw)
		assert.Equal(t, "Stay hydrated.", parsed.Response, "input %q", raw)
	}
}

func TestParse_SourceLabelMidLineTruncatesLine(t *testing.T) {
	raw := "[RESPONSE]Walk daily. Sources: WHO\nKeep moving.[/RESPONSE]"

	parsed := ParseStructuredResponse(raw)

	// Only the whole response is trimmed, so the space before the stripped
	// label survives.
	assert.Equal(t, "Walk daily. \nKeep moving.", parsed.Response)
}

func TestParse_Idempotent(t *testing.T) {
	raw := "[THINKING]plan[/THINKING][RESPONSE]Drink water and rest.[/RESPONSE][SOURCES]CDC[/SOURCES]"

	first := ParseStructuredResponse(raw)
	second := ParseStructuredResponse(first.Response)

	assert.Equal(t, first.Response, second.Response)
}

func TestParse_TotalOnArbitraryInput(t *testing.T) {
	inputs := []string{
		"[/THINKING][THINKING]",
		"[[THINKING]]x[[/THINKING]]",
		strings.Repeat("[THINKING]a[/THINKING]", 50),
		"[SOURCES][/SOURCES]",
		"   \n\t  ",
	}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			ParseStructuredResponse(in)
		}, "input %q", in)
	}
}

func TestParse_EmptySourcesBlockYieldsNil(t *testing.T) {
	parsed := ParseStructuredResponse("[RESPONSE]ok[/RESPONSE][SOURCES][/SOURCES]")

	assert.Nil(t, parsed.Sources)
}
