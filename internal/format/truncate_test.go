package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncateShortInputUnchanged(t *testing.T) {
	require.Equal(t, "short reply.", Truncate("short reply.", 100))

	exact := strings.Repeat("a", 100)
	require.Equal(t, exact, Truncate(exact, 100))
}

func TestTruncateAtSentenceBreak(t *testing.T) {
	text := strings.Repeat("a", 72) + "." + strings.Repeat("b", 77)

	got := Truncate(text, 100)
	require.Equal(t, strings.Repeat("a", 72)+"."+truncationNotice, got)
	require.LessOrEqual(t, len(got), len(text))
}

func TestTruncateAtThresholdBoundary(t *testing.T) {
	// A break sitting exactly at 70% of the limit still qualifies.
	text := strings.Repeat("a", 70) + "." + strings.Repeat("b", 50)

	got := Truncate(text, 100)
	require.Equal(t, text[:71]+truncationNotice, got)
}

func TestTruncatePrefersLatestBreak(t *testing.T) {
	text := strings.Repeat("a", 72) + "." + strings.Repeat("b", 12) + "!" + strings.Repeat("c", 60)

	got := Truncate(text, 100)
	require.Equal(t, text[:86]+truncationNotice, got)
}

func TestTruncateAtNewline(t *testing.T) {
	text := strings.Repeat("a", 80) + "\n" + strings.Repeat("b", 40)

	got := Truncate(text, 100)
	require.Equal(t, text[:81]+truncationNotice, got)
}

func TestTruncateHardCutWithoutQualifyingBreak(t *testing.T) {
	// The only break sits below 70% of the limit, so the cut is hard.
	text := strings.Repeat("a", 50) + "." + strings.Repeat("b", 100)

	got := Truncate(text, 100)
	require.Equal(t, text[:100]+truncationNotice, got)
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("д", 120)

	got := Truncate(text, 100)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, strings.Repeat("д", 100)+truncationNotice, got)
}
