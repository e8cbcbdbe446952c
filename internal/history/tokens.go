package history

import "unicode/utf8"

// EstimateTokens roughly estimates the token cost of a message set from
// character length, using the common 1 token ≈ 4 characters heuristic.
// Characters are counted as runes, not bytes. Good enough for bounding
// request payloads, not for billing.
func EstimateTokens(msgs []Message) int {
	total := 0
	for _, m := range msgs {
		total += utf8.RuneCountInString(m.Content)
	}
	return total / 4
}
