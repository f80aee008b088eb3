package schedule

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Intents reported by Handle, used as metric labels.
const (
	IntentFriendly     = "friendly"
	IntentNthClass     = "nth_class"
	IntentDayMessage   = "day_message"
	IntentCountSubject = "count_subject"
	IntentDaySchedule  = "day_schedule"
	IntentFollowUp     = "follow_up"
	IntentNextClass    = "next_class"
	IntentCurrentClass = "current_class"
	IntentWeekSchedule = "week_schedule"
	IntentFallback     = "fallback"
	IntentError        = "error"
)

var (
	numericClassRe = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)?\s*(?:class|period)`)
	countSubjectRe = regexp.MustCompile(`how many\s+(.+?)\s+(?:classes|class|periods|lectures)\b`)
)

// Handle classifies one query and answers it. Branches are tried in a
// fixed order and the first match wins, so more specific intents sit
// before the broad ones. The returned intent labels the branch taken.
func (a *Assistant) Handle(ctx context.Context, text string, now time.Time, cctx *Context) (reply, intent string) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic while handling query", "panic", r, "text", text)
			reply = "Sorry, I had trouble understanding that request 😅"
			intent = IntentError
		}
	}()

	text = strings.ToLower(text)

	if friendly := a.friendlyReply(text, cctx); friendly != "" {
		return friendly, IntentFriendly
	}

	mentionedDay, dayMessage := ResolveDay(text, now)

	hasOrdinal := false
	for _, o := range ordinalWords {
		if strings.Contains(text, o.word) {
			hasOrdinal = true
			break
		}
	}
	hasNumeric := numericClassRe.MatchString(text)

	// Period-specific queries need a day to count within.
	if hasOrdinal || hasNumeric {
		if mentionedDay == "" && dayMessage != "" {
			return dayMessage, IntentDayMessage
		}
		if mentionedDay == "" {
			return "Which day would you like to know about? 🤔", IntentNthClass
		}

		for _, o := range ordinalWords {
			if !strings.Contains(text, o.word) {
				continue
			}
			n := o.n
			if n == -1 {
				classes, err := a.store.QueryTimetable(ctx, mentionedDay)
				if err != nil {
					slog.ErrorContext(ctx, "failed to resolve last class", "day", mentionedDay, "error", err)
					return "Sorry, I had trouble understanding that request 😅", IntentError
				}
				if len(classes) == 0 {
					return "No classes found for " + mentionedDay + " 🤔", IntentNthClass
				}
				n = len(classes)
			}
			return a.NthClass(ctx, mentionedDay, n, cctx), IntentNthClass
		}

		if m := numericClassRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return a.NthClass(ctx, mentionedDay, n, cctx), IntentNthClass
		}
	}

	// A day resolved to a message (weekend) ends the query here.
	if dayMessage != "" {
		return dayMessage, IntentDayMessage
	}

	// Subject counting comes before the day and week branches: a count
	// query mentions "classes" and often a day or "week", which would
	// otherwise capture it.
	if m := countSubjectRe.FindStringSubmatch(text); m != nil {
		subject := strings.TrimSpace(m[1])
		if subject != "" {
			return a.CountSubject(ctx, subject, mentionedDay), IntentCountSubject
		}
	}

	if mentionedDay != "" {
		cctx.LastDay = mentionedDay
		return a.ScheduleForDay(ctx, mentionedDay, cctx), IntentDaySchedule
	}

	for _, phrase := range followUpPhrases {
		if strings.Contains(text, phrase) {
			if cctx.canFollowUp() {
				return a.ClassAfter(ctx, cctx.LastClass, cctx), IntentFollowUp
			}
			return "I'm not sure which class you're referring to. Try asking about a specific class first! 🤔", IntentFollowUp
		}
	}

	for _, phrase := range nextClassPhrases {
		if strings.Contains(text, phrase) {
			return a.NextClass(ctx, now, cctx), IntentNextClass
		}
	}

	for _, phrase := range currentClassPhrases {
		if strings.Contains(text, phrase) {
			return a.CurrentClass(ctx, now, cctx), IntentCurrentClass
		}
	}

	if strings.Contains(text, "week") || strings.Contains(text, "all") {
		return a.WeekSchedule(ctx, cctx), IntentWeekSchedule
	}

	if !cctx.GreetingDone {
		return "Hi! I can help you with your schedule! Try asking about your next class, current class, or schedule for any day! 😊", IntentFallback
	}
	return "I'm here to help! You can ask about your schedule, next class, or just chat with me! 🌟", IntentFallback
}

// friendlyReply answers standalone small talk. Longer queries skip it
// so greetings buried in a real question don't short-circuit the
// dispatch.
func (a *Assistant) friendlyReply(text string, cctx *Context) string {
	if len(strings.Fields(text)) > 3 {
		return ""
	}

	for _, word := range greetingWords {
		if strings.Contains(text, word) {
			cctx.GreetingDone = true
			return a.pick(greetingReplies)
		}
	}
	if strings.Contains(text, "how are you") {
		return a.pick(howAreYouReplies)
	}
	for _, word := range thanksWords {
		if strings.Contains(text, word) {
			return a.pick(thanksReplies)
		}
	}
	for _, word := range byeWords {
		if strings.Contains(text, word) {
			return a.pick(byeReplies)
		}
	}
	return ""
}
