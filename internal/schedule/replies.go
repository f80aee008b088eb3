package schedule

import "strconv"

// Canned reply pools for small talk. One entry is picked at random so
// repeated greetings don't feel robotic.
var (
	greetingReplies = []string{
		"Hello! How can I help you today? 😊",
		"Hi there! Need help with your schedule? 👋",
		"Hey! Great to see you! How can I assist? 🌟",
	}
	howAreYouReplies = []string{
		"I'm doing great, thanks for asking! How about you? 😊",
		"I'm excellent! Ready to help you with your schedule or just chat! 🌟",
		"All good here! What can I help you with today? 💫",
	}
	thanksReplies = []string{
		"You're welcome! Need anything else? 😊",
		"Anytime! Don't hesitate to ask if you need more help! 🌟",
		"Glad I could help! Let me know if you need anything else! 💫",
	}
	byeReplies = []string{
		"Goodbye! Have a great day! 👋",
		"See you later! Take care! 🌟",
		"Bye! Don't forget about your classes! 📚",
	}
)

var (
	greetingWords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}
	thanksWords   = []string{"thank", "thanks", "thx"}
	byeWords      = []string{"bye", "goodbye", "see you", "cya"}
)

// Phrase tables for intent detection. Matching is loose substring
// search over the lowercased query.
var (
	followUpPhrases = []string{
		"after that", "following that", "after this", "what then", "and then",
		"what about after", "what follows", "what comes after", "what is after",
		"what class is after", "what comes next", "what is next after that",
	}
	nextClassPhrases    = []string{"next class", "next period", "upcoming class", "following class"}
	currentClassPhrases = []string{"current class", "right now", "this class", "present class"}
	dayschedulePhrases  = []string{"schedule", "classes", "periods", "lectures"}
)

// ordinalWords maps ordinal tokens to 1-based positions, scanned in
// slice order so "first" wins over "1st" when both appear. -1 means the
// last class of the day.
var ordinalWords = []struct {
	word string
	n    int
}{
	{"first", 1}, {"second", 2}, {"third", 3}, {"fourth", 4}, {"fifth", 5},
	{"1st", 1}, {"2nd", 2}, {"3rd", 3}, {"4th", 4}, {"5th", 5},
	{"last", -1},
}

// subjectSynonyms maps common short forms to the subject names stored
// in the timetable.
var subjectSynonyms = map[string]string{
	"PPL":                  "PRINCIPLES OF PL",
	"PRINCIPLES":           "PRINCIPLES OF PL",
	"SOFTWARE":             "SOFTWARE ENGG",
	"SOFTWARE ENGINEERING": "SOFTWARE ENGG",
	"DISTRIBUTED":          "DISTRIBUTED SYSTEMS",
	"SECURITY":             "COMPUTER SECURITY",
	"COMPUTER SEC":         "COMPUTER SECURITY",
}

// ordinalName renders a 1-based position as an English ordinal word.
func ordinalName(n int) string {
	switch n {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	case 5:
		return "fifth"
	default:
		return strconv.Itoa(n) + "th"
	}
}

func plural(count int) string {
	if count == 1 {
		return "class"
	}
	return "classes"
}

// roomOrTBD fills in a placeholder when a slot has no room assigned.
func roomOrTBD(room string) string {
	if room == "" {
		return "TBD"
	}
	return room
}
