// Package canned intercepts trivial inputs with fixed local replies so they
// never reach the completion API. Matching runs over an ordered rule list;
// the first rule that matches wins. Replies come in Russian and English
// variants, chosen by per-rule trigger words found in the input.
package canned

import (
	"slices"
	"strings"
)

// Reply returns the canned text for input and the name of the matched rule
// group. ok is false when no rule matches and the completion API must be
// used instead. Matching is case-insensitive and ignores surrounding
// whitespace.
func Reply(input string) (text, group string, ok bool) {
	q := strings.ToLower(strings.TrimSpace(input))
	for _, r := range rules {
		if r.match(q) {
			return r.respond(q), r.name, true
		}
	}
	return "", "", false
}

type rule struct {
	name    string
	match   func(q string) bool
	respond func(q string) string
}

// Rule order matters: identity questions must run before greetings so that
// inputs like "hello, who are you" get the descriptive reply.
var rules = []rule{
	{
		name:    "goyda",
		match:   containsAny("гойда"),
		respond: fixed("Гойда, брат!"),
	},
	{
		name:    "identity",
		match:   containsAny(identityPhrases...),
		respond: byLanguage(identityRussian, identityReplyRU, identityReplyEN),
	},
	{
		name:    "greeting",
		match:   matchGreeting,
		respond: byLanguage(greetingRussian, "Привет!", "Hello!"),
	},
	{
		name:    "farewell",
		match:   equalsAny(farewellPhrases...),
		respond: byLanguage(farewellRussian, "До свидания!", "Goodbye!"),
	},
	{
		name:    "thanks",
		match:   equalsAny(thanksPhrases...),
		respond: byLanguage(thanksRussian, "Пожалуйста.", "You're welcome."),
	},
	{
		name:    "affirmation",
		match:   equalsAny(affirmationPhrases...),
		respond: byLanguage(affirmationRussian, "Ок.", "Okay."),
	},
	{
		name:    "negation",
		match:   equalsAny(negationPhrases...),
		respond: byLanguage(negationRussian, "Понятно.", "Understood."),
	},
	{
		name:    "statement",
		match:   matchStatement,
		respond: byLanguage(statementRussian, "Понятно.", "Noted."),
	},
}

func matchGreeting(q string) bool {
	return slices.Contains(greetingPhrases, q) || strings.HasPrefix(q, "hello")
}

// matchStatement catches simple self-statements like "my name is X" or
// "мне 30 лет" that need acknowledgement, not a search.
func matchStatement(q string) bool {
	for _, p := range statementPrefixes {
		if strings.HasPrefix(q, p) {
			return true
		}
	}
	return strings.HasPrefix(q, "мне") && (strings.Contains(q, "лет") || strings.Contains(q, "год"))
}

// --- matcher and responder builders ---

func containsAny(phrases ...string) func(string) bool {
	return func(q string) bool {
		for _, p := range phrases {
			if strings.Contains(q, p) {
				return true
			}
		}
		return false
	}
}

func equalsAny(phrases ...string) func(string) bool {
	return func(q string) bool {
		return slices.Contains(phrases, q)
	}
}

func fixed(reply string) func(string) string {
	return func(string) string { return reply }
}

// byLanguage picks the Russian reply when any trigger word appears in the
// input, the English reply otherwise.
func byLanguage(triggers []string, russian, english string) func(string) string {
	return func(q string) string {
		for _, w := range triggers {
			if strings.Contains(q, w) {
				return russian
			}
		}
		return english
	}
}

// --- pattern data ---

const (
	identityReplyRU = "Я модель-трансформер, созданная на основе Llama 3.3 70B и дополненная фунциями поиска в интернете. Я отвечаю на ваши вопросы используя поиск в интернете."
	identityReplyEN = "I am an AI assistant. I can answer questions and provide information based on my available data and conversation history."
)

var (
	identityPhrases = []string{
		"who are you", "what are you", "tell me about yourself", "what's your name", "your purpose",
		"кто ты", "ты кто", "что ты такое", "как тебя зовут", "расскажи о себе",
		"что ты умеешь", "what can you do", "твои возможности", "твои функции",
		"что ты делаешь", "для чего ты нужна", "для чего ты нужен", "какова твоя цель",
		"твоя задача", "твое предназначение",
	}
	identityRussian = []string{
		"кто ты", "ты кто", "что ты такое", "как тебя зовут", "расскажи о себе", "что ты умеешь",
		"твои возможности", "твои функции", "что ты делаешь", "для чего ты нужна", "для чего ты нужен",
		"какова твоя цель", "твоя задача", "твое предназначение",
	}

	greetingPhrases = []string{
		"hello", "hi", "hey", "howdy", "hola", "greetings",
		"good morning", "good afternoon", "good evening",
		"привет", "прив", "здарова", "здравствуй", "здравствуйте",
		"доброе утро", "добрый день", "добрый вечер",
	}
	greetingRussian = []string{"привет", "здравствуй", "доброе", "добрый"}

	farewellPhrases = []string{
		"bye", "goodbye", "see you", "see ya", "later", "cya",
		"пока", "до свидания", "увидимся", "прощай", "до встречи",
	}
	farewellRussian = []string{"пока", "до свидания", "прощай"}

	thanksPhrases = []string{
		"thanks", "thank you", "thx", "ty", "thank you very much", "thanks a lot",
		"спасибо", "спс", "благодарю", "спасибо большое", "огромное спасибо",
	}
	thanksRussian = []string{"спасибо", "спс", "благодарю"}

	affirmationPhrases = []string{
		"ok", "okay", "got it", "understood", "fine", "alright", "yes", "yep", "yeah",
		"хорошо", "окей", "ладно", "понял", "поняла", "понятно", "да", "ага",
	}
	affirmationRussian = []string{"хорошо", "окей", "ладно", "понял", "поняла", "понятно", "да", "ага"}

	negationPhrases = []string{
		"no", "nope", "nah", "not really",
		"нет", "неа", "не",
	}
	negationRussian = []string{"нет", "неа", "не"}

	statementPrefixes = []string{
		"my name is", "i am", "i live in", "i'm",
		"меня зовут", "я живу в", "я -", "я —",
	}
	statementRussian = []string{"меня", "зовут", "живу", "лет", "год"}
)
