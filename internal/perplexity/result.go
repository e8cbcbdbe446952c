package perplexity

// Reason classifies why a completion fell back to fixed text.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmptyHistory
	ReasonTimeout
	ReasonTransport
	ReasonBadResponse
	ReasonInternal
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEmptyHistory:
		return "empty history"
	case ReasonTimeout:
		return "timeout"
	case ReasonTransport:
		return "transport"
	case ReasonBadResponse:
		return "bad response"
	case ReasonInternal:
		return "internal"
	}
	return "unknown"
}

// Result is the outcome of a completion call. Fallback results carry a
// fixed apology text in place of model output; callers must not persist
// them into conversation history.
type Result struct {
	Text     string
	Fallback bool
	Reason   Reason
}

func ok(text string) Result {
	return Result{Text: text}
}

func fallback(text string, reason Reason) Result {
	return Result{Text: text, Fallback: true, Reason: reason}
}
