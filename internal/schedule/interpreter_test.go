package schedule

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/campuspal/schedule-assistant/internal/storage"
)

type fakeStore struct {
	slots map[string][]storage.Slot
	err   error
}

func (f *fakeStore) QueryTimetable(_ context.Context, day string) ([]storage.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[day], nil
}

func slot(day string, period int, start, end, subject, room string) storage.Slot {
	return storage.Slot{Day: day, Period: period, StartTime: start, EndTime: end, Subject: subject, Room: room}
}

// testWeek mirrors the demo timetable.
func testWeek() map[string][]storage.Slot {
	return map[string][]storage.Slot{
		"MON": {
			slot("MON", 2, "9:50", "10:40", "SOFT SKILLS", "S302/S303"),
			slot("MON", 3, "10:50", "11:40", "DISTRIBUTED SYSTEMS", "FF LAB"),
			slot("MON", 5, "12:30", "1:20", "LUNCH", ""),
			slot("MON", 6, "1:20", "2:10", "CLOUD", "N106"),
			slot("MON", 7, "2:10", "3:00", "DISTRIBUTED SYSTEMS", "N106"),
			slot("MON", 9, "4:00", "4:50", "CLOUD", "N106"),
		},
		"TUE": {
			slot("TUE", 1, "9:00", "9:50", "DISTRIBUTED SYSTEMS", "N106"),
			slot("TUE", 2, "9:50", "10:40", "COMPUTER SECURITY", "N302"),
			slot("TUE", 3, "10:50", "11:40", "PRINCIPLES OF PL", "N106"),
			slot("TUE", 5, "12:30", "1:20", "SOFTWARE ENGG", "N106"),
		},
		"WED": {
			slot("WED", 2, "9:50", "10:40", "COMPUTER SECURITY", "N106"),
			slot("WED", 5, "12:30", "1:20", "SOFTWARE ENGG", "N106"),
			slot("WED", 6, "1:20", "2:10", "FULL STACK", "N103"),
			slot("WED", 7, "2:10", "3:00", "WIRELESS", "N106"),
		},
		"THU": {
			slot("THU", 1, "9:00", "9:50", "PRINCIPLES OF PL", "N306"),
			slot("THU", 2, "9:50", "10:40", "FULL STACK", "N103"),
			slot("THU", 3, "10:50", "11:40", "WIRELESS", "N106"),
			slot("THU", 4, "11:40", "12:30", "SNS", "N103"),
			slot("THU", 5, "12:30", "1:20", "LUNCH", ""),
			slot("THU", 6, "1:20", "2:10", "DISTRIBUTED SYSTEMS", "N106"),
			slot("THU", 7, "2:10", "3:00", "CLOUD", "N106"),
			slot("THU", 8, "3:10", "4:00", "SOFTWARE ENGG", "A207 B"),
		},
		"FRI": {
			slot("FRI", 1, "9:00", "9:50", "VERBAL", "N301 | N309 B"),
			slot("FRI", 2, "9:50", "10:40", "FULL STACK", "N103"),
			slot("FRI", 3, "10:50", "11:40", "WIRELESS", "N106"),
			slot("FRI", 4, "11:40", "12:30", "COMPUTER SECURITY", "N302"),
			slot("FRI", 5, "12:30", "1:20", "LUNCH", ""),
			slot("FRI", 6, "1:20", "2:10", "SNS", "N103"),
			slot("FRI", 7, "2:10", "3:00", "SNA", "N106"),
			slot("FRI", 8, "3:10", "4:00", "APTITUDE", "N307"),
		},
	}
}

func newTestAssistant() *Assistant {
	return New(&fakeStore{slots: testWeek()}, rand.New(rand.NewSource(1)))
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

func TestHandleSmallTalk(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	t.Run("greeting", func(t *testing.T) {
		var cctx Context
		reply, intent := a.Handle(ctx, "Hello!", monday, &cctx)
		if !slices.Contains(greetingReplies, reply) {
			t.Errorf("reply %q not in greeting pool", reply)
		}
		if intent != IntentFriendly {
			t.Errorf("intent = %q, want friendly", intent)
		}
		if !cctx.GreetingDone {
			t.Error("GreetingDone not set after greeting")
		}
	})

	t.Run("greeting matches loosely in short phrases", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "what is this", monday, &cctx)
		if !slices.Contains(greetingReplies, reply) {
			t.Errorf("reply %q not in greeting pool", reply)
		}
	})

	t.Run("how are you", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "how are you", monday, &cctx)
		if !slices.Contains(howAreYouReplies, reply) {
			t.Errorf("reply %q not in how-are-you pool", reply)
		}
	})

	t.Run("thanks", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "thanks", monday, &cctx)
		if !slices.Contains(thanksReplies, reply) {
			t.Errorf("reply %q not in thanks pool", reply)
		}
	})

	t.Run("bye", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "bye now", monday, &cctx)
		if !slices.Contains(byeReplies, reply) {
			t.Errorf("reply %q not in bye pool", reply)
		}
	})

	t.Run("long query skips small talk", func(t *testing.T) {
		var cctx Context
		reply, intent := a.Handle(ctx, "hello what is my next class please", at(monday, 9, 0), &cctx)
		if intent != IntentNextClass {
			t.Errorf("intent = %q, want next_class", intent)
		}
		if !strings.Contains(reply, "SOFT SKILLS") {
			t.Errorf("reply = %q, want next class answer", reply)
		}
	})
}

func TestHandleCurrentClass(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	t.Run("in a class", func(t *testing.T) {
		var cctx Context
		reply, intent := a.Handle(ctx, "what class is right now", at(monday, 10, 0), &cctx)
		want := "You're currently in SOFT SKILLS until 10:40 in S302/S303 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
		if intent != IntentCurrentClass {
			t.Errorf("intent = %q, want current_class", intent)
		}
		if cctx.LastClass == nil || cctx.LastClass.Subject != "SOFT SKILLS" || cctx.LastDay != "MON" {
			t.Errorf("context not updated: %+v", cctx)
		}
	})

	t.Run("end boundary is inclusive", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "current class", at(monday, 10, 40), &cctx)
		if !strings.Contains(reply, "SOFT SKILLS") {
			t.Errorf("reply = %q, want class still in progress at its end minute", reply)
		}
	})

	t.Run("between classes", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "current class", at(monday, 11, 41), &cctx)
		if reply != "No class right now! 😌" {
			t.Errorf("reply = %q", reply)
		}
		if cctx.LastClass != nil {
			t.Errorf("LastClass = %+v, want nil", cctx.LastClass)
		}
	})

	t.Run("weekend", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "current class", at(saturday, 10, 0), &cctx)
		if reply != "No classes today! 🎉" {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestHandleNextClass(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	t.Run("later today", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "next class", at(monday, 9, 0), &cctx)
		want := "Your next class is SOFT SKILLS at 9:50 in S302/S303 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
	})

	t.Run("rolls to next day", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "next class", at(tuesday, 13, 0), &cctx)
		want := "No more classes today! Your next class is COMPUTER SECURITY at 9:50 in N106 on WED 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
		if cctx.LastDay != "WED" {
			t.Errorf("LastDay = %q, want WED", cctx.LastDay)
		}
	})

	t.Run("week exhausted", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "next class", at(friday, 17, 0), &cctx)
		if reply != "No more classes scheduled this week! 🎉" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		broken := New(&fakeStore{err: errors.New("disk gone")}, rand.New(rand.NewSource(1)))
		var cctx Context
		reply, _ := broken.Handle(ctx, "next class", at(monday, 9, 0), &cctx)
		if reply != "Sorry, I couldn't check your next class 😅" {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestHandleDaySchedule(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	t.Run("full day listing", func(t *testing.T) {
		var cctx Context
		reply, intent := a.Handle(ctx, "schedule for tuesday", monday, &cctx)
		if intent != IntentDaySchedule {
			t.Errorf("intent = %q, want day_schedule", intent)
		}
		lines := strings.Split(reply, "\n")
		if lines[0] != "📅 Schedule for TUE:" {
			t.Errorf("header = %q", lines[0])
		}
		if len(lines) != 5 {
			t.Fatalf("got %d lines, want 5: %q", len(lines), reply)
		}
		if lines[1] != "• 9:00 - 9:50: DISTRIBUTED SYSTEMS in N106" {
			t.Errorf("first entry = %q", lines[1])
		}
		if cctx.LastDay != "TUE" {
			t.Errorf("LastDay = %q, want TUE", cctx.LastDay)
		}
		if cctx.LastClass != nil {
			t.Errorf("LastClass = %+v, want nil after day schedule", cctx.LastClass)
		}
	})

	t.Run("bare day name shows schedule", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "wednesday", monday, &cctx)
		if !strings.HasPrefix(reply, "📅 Schedule for WED:") {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("empty room shown as TBD", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "schedule for monday", monday, &cctx)
		if !strings.Contains(reply, "• 12:30 - 1:20: LUNCH in TBD") {
			t.Errorf("reply = %q, want TBD for empty room", reply)
		}
	})

	t.Run("day without classes", func(t *testing.T) {
		sparse := New(&fakeStore{slots: map[string][]storage.Slot{"MON": testWeek()["MON"]}}, rand.New(rand.NewSource(1)))
		var cctx Context
		reply, _ := sparse.Handle(ctx, "schedule for friday", monday, &cctx)
		if reply != "No classes scheduled for FRI! 🎉" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("weekend day message", func(t *testing.T) {
		var cctx Context
		reply, intent := a.Handle(ctx, "schedule for saturday", monday, &cctx)
		if reply != "No classes on Saturday! 🎉" {
			t.Errorf("reply = %q", reply)
		}
		if intent != IntentDayMessage {
			t.Errorf("intent = %q, want day_message", intent)
		}
	})

	t.Run("weekend tomorrow rolls forward", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "schedule for tomorrow", friday, &cctx)
		if reply != "Since tomorrow is Saturday, here's your schedule for Monday" {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestHandleNthClass(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"ordinal word", "second class on monday",
			"Your second class on MON is DISTRIBUTED SYSTEMS at 10:50 in FF LAB 📚"},
		{"ordinal with empty room", "third class on monday",
			"Your third class on MON is LUNCH at 12:30 in TBD 📚"},
		{"numeric suffix", "6th class on monday",
			"Your 6th class on MON is CLOUD at 4:00 in N106 📚"},
		{"last class", "last class on friday",
			"Your 8th class on FRI is APTITUDE at 3:10 in N307 📚"},
		{"out of range", "9th class on monday",
			"You only have 6 classes on MON 🤔"},
		{"no day mentioned", "what is the second class",
			"Which day would you like to know about? 🤔"},
		{"weekend day", "first class on saturday",
			"No classes on Saturday! 🎉"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cctx Context
			reply, _ := a.Handle(ctx, tt.text, monday, &cctx)
			if reply != tt.want {
				t.Errorf("Handle(%q) = %q, want %q", tt.text, reply, tt.want)
			}
		})
	}

	t.Run("empty day with last", func(t *testing.T) {
		sparse := New(&fakeStore{slots: map[string][]storage.Slot{"MON": testWeek()["MON"]}}, rand.New(rand.NewSource(1)))
		var cctx Context
		reply, _ := sparse.Handle(ctx, "last class on friday", monday, &cctx)
		if reply != "No classes found for FRI 🤔" {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestHandleFollowUp(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	t.Run("chains from next class", func(t *testing.T) {
		var cctx Context
		a.Handle(ctx, "next class", at(monday, 9, 0), &cctx)

		reply, intent := a.Handle(ctx, "what about after that", at(monday, 9, 0), &cctx)
		want := "After SOFT SKILLS, you have DISTRIBUTED SYSTEMS at 10:50 in FF LAB 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
		if intent != IntentFollowUp {
			t.Errorf("intent = %q, want follow_up", intent)
		}

		// Chains again from the answer it just gave.
		reply, _ = a.Handle(ctx, "and then", at(monday, 9, 0), &cctx)
		if !strings.Contains(reply, "LUNCH") {
			t.Errorf("second follow-up = %q, want LUNCH", reply)
		}
	})

	t.Run("last class of day rolls to next day", func(t *testing.T) {
		var cctx Context
		a.Handle(ctx, "last class on thursday", monday, &cctx)

		reply, _ := a.Handle(ctx, "what comes after", monday, &cctx)
		want := "That's your last class for THU! Your next class is VERBAL at 9:00 on FRI in N301 | N309 B 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
	})

	t.Run("ordinal position resolves against gapped periods", func(t *testing.T) {
		// MON's sixth class sits in period 9; the recorded position 6
		// matches the period-6 slot instead, so the chain continues
		// from mid-afternoon.
		var cctx Context
		a.Handle(ctx, "last class on monday", monday, &cctx)

		reply, _ := a.Handle(ctx, "what comes after", monday, &cctx)
		want := "After CLOUD, you have DISTRIBUTED SYSTEMS at 2:10 in N106 📚"
		if reply != want {
			t.Errorf("reply = %q, want %q", reply, want)
		}
	})

	t.Run("last class of week", func(t *testing.T) {
		var cctx Context
		a.Handle(ctx, "last class on friday", monday, &cctx)

		reply, _ := a.Handle(ctx, "what follows", monday, &cctx)
		if reply != "That's your last class for the week! 🎉" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("without prior class", func(t *testing.T) {
		var cctx Context
		reply, _ := a.Handle(ctx, "what about after that", monday, &cctx)
		if reply != "I'm not sure which class you're referring to. Try asking about a specific class first! 🤔" {
			t.Errorf("reply = %q", reply)
		}
	})

	t.Run("day schedule does not pin a class", func(t *testing.T) {
		var cctx Context
		a.Handle(ctx, "schedule for monday", monday, &cctx)

		reply, _ := a.Handle(ctx, "what about after that", monday, &cctx)
		if reply != "I'm not sure which class you're referring to. Try asking about a specific class first! 🤔" {
			t.Errorf("reply = %q", reply)
		}
	})
}

func TestHandleCountSubject(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"count on one day", "how many distributed systems classes on monday",
			"You have 2 DISTRIBUTED SYSTEMS classes on MON 📚"},
		{"synonym expands", "how many security classes on wednesday",
			"You have 1 COMPUTER SECURITY class on WED 📚"},
		{"none on day", "how many yoga classes on monday",
			"You don't have any YOGA classes on MON 📅"},
		{"week total with synonym", "how many ppl classes this week",
			"You have 2 PRINCIPLES OF PL classes this week:\n• TUE: 1 class\n• THU: 1 class 📚"},
		{"week total spelled out", "how many software engineering classes this week",
			"You have 3 SOFTWARE ENGG classes this week:\n• TUE: 1 class\n• WED: 1 class\n• THU: 1 class 📚"},
		{"none this week", "how many yoga classes this week",
			"You don't have any YOGA classes this week 📅"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cctx Context
			reply, intent := a.Handle(ctx, tt.text, monday, &cctx)
			if reply != tt.want {
				t.Errorf("Handle(%q) = %q, want %q", tt.text, reply, tt.want)
			}
			if intent != IntentCountSubject {
				t.Errorf("intent = %q, want count_subject", intent)
			}
		})
	}
}

func TestHandleWeekSchedule(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	var cctx Context
	reply, intent := a.Handle(ctx, "show me my whole week", monday, &cctx)
	if intent != IntentWeekSchedule {
		t.Fatalf("intent = %q, want week_schedule", intent)
	}

	days := strings.Split(reply, "\n\n")
	if len(days) != 5 {
		t.Fatalf("got %d day blocks, want 5", len(days))
	}
	for i, d := range Weekdays {
		if !strings.HasPrefix(days[i], "📅 Schedule for "+d+":") {
			t.Errorf("block %d = %q, want schedule for %s", i, days[i], d)
		}
	}
}

func TestHandleFallback(t *testing.T) {
	a := newTestAssistant()
	ctx := context.Background()

	var cctx Context
	reply, intent := a.Handle(ctx, "tell me about quantum physics please", monday, &cctx)
	if intent != IntentFallback {
		t.Fatalf("intent = %q, want fallback", intent)
	}
	if reply != "Hi! I can help you with your schedule! Try asking about your next class, current class, or schedule for any day! 😊" {
		t.Errorf("first-contact reply = %q", reply)
	}

	a.Handle(ctx, "hello", monday, &cctx)
	reply, _ = a.Handle(ctx, "tell me about quantum physics please", monday, &cctx)
	if reply != "I'm here to help! You can ask about your schedule, next class, or just chat with me! 🌟" {
		t.Errorf("post-greeting reply = %q", reply)
	}
}
