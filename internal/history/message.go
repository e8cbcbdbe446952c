package history

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation. Immutable once appended.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
