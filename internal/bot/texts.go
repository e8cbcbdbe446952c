package bot

import (
	"fmt"

	"github.com/nanohit/alphy-llm/internal/usage"
)

// Fixed user-facing texts for commands and notices.
const (
	historyResetText = "⚠️ Conversation history became too long and has been reset. Please send your message again to continue."

	// Catch-all notice for failures that escape normal handling.
	errorNoticeText = "Conversation history became too long, please reset chat to continue."

	historyClearedText = "Conversation history cleared."

	rateLimitText = "You're sending messages too fast. Please wait a minute and try again."

	helpText = "I'm an AI assistant powered by Perplexity's Sonar model, maintaining conversation history.\n\n" +
		"Just send me a message with your question or topic, and I'll respond contextually.\n\n" +
		"Commands:\n" +
		"/start - Start a new conversation (clears history)\n" +
		"/restart - Restart the conversation (clears history)\n" +
		"/clear - Clear the current conversation history\n" +
		"/help - Show this help message\n" +
		"/stats - Show usage statistics and estimated costs"
)

func greetingText(name string) string {
	return fmt.Sprintf("Hi %s! Ask your question and Alphy will try to answer it. "+
		"The model is not designed for personal human interaction, it is a search and reasoning engine. "+
		"Do not greet or thank it.", name)
}

func statsText(s usage.Stats) string {
	return fmt.Sprintf(
		"📊 *Usage Statistics*\n\n"+
			"Total API requests: %d\n"+
			"Total tokens used: %d\n\n"+
			"Estimated cost so far: $%.4f\n"+
			"Cost per request: $%.4f\n"+
			"Cost per million tokens: $%.2f",
		s.Requests, s.Tokens, s.CostUSD, usage.RequestCost, usage.TokenCostPerMillion,
	)
}
