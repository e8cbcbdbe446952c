// Package format shapes model output for delivery to the chat transport.
package format

// MaxOutputLength caps reply size in characters before truncation kicks in.
const MaxOutputLength = 1000

const truncationNotice = "\n\n*[Response truncated due to length...]*"

// breakThreshold is how far into the limit a sentence break must sit to be
// usable as the cut point.
const breakThreshold = 0.7

var breakPoints = []rune{'.', '!', '?', '\n'}

// Truncate caps text at maxLength characters and appends a truncation
// notice. It prefers cutting right after the last sentence or line break,
// as long as that break sits at or past 70% of the limit; otherwise it
// cuts hard at the limit. Text within the limit is returned unchanged.
// Lengths are counted in runes so multi-byte text is never split mid
// character.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	head := runes[:maxLength]
	threshold := int(float64(maxLength) * breakThreshold)

	cut := -1
	for _, bp := range breakPoints {
		if i := lastIndex(head, bp); i >= threshold && i > cut {
			cut = i
		}
	}
	if cut >= 0 {
		return string(head[:cut+1]) + truncationNotice
	}
	return string(head) + truncationNotice
}

func lastIndex(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
