package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campuspal/schedule-assistant/internal/storage"
)

// SlotStore is the timetable read surface the assistant needs.
// An empty day queries the whole week.
type SlotStore interface {
	QueryTimetable(ctx context.Context, day string) ([]storage.Slot, error)
}

// Assistant answers timetable questions from the slot store and keeps
// the conversation context current as it goes.
type Assistant struct {
	store SlotStore
	rng   *rand.Rand
}

// New creates an assistant over the given store. A nil rng gets a
// time-seeded source; tests pass a fixed seed for stable picks.
func New(store SlotStore, rng *rand.Rand) *Assistant {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Assistant{store: store, rng: rng}
}

func (a *Assistant) pick(pool []string) string {
	return pool[a.rng.Intn(len(pool))]
}

func classInfoFromSlot(s storage.Slot, day string) *ClassInfo {
	return &ClassInfo{
		Subject:   s.Subject,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Room:      s.Room,
		Period:    s.Period,
		Day:       day,
	}
}

// currentDayCode renders a weekday as the three-letter code used in the
// timetable. Weekend codes match no rows, which is the point.
func currentDayCode(now time.Time) string {
	return strings.ToUpper(now.Weekday().String()[:3])
}

// CurrentClass reports the class in progress at the given instant.
// Slot bounds are inclusive on both ends.
func (a *Assistant) CurrentClass(ctx context.Context, now time.Time, cctx *Context) string {
	day := currentDayCode(now)
	currentMinutes := now.Hour()*60 + now.Minute()

	classes, err := a.store.QueryTimetable(ctx, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up current class", "error", err)
		return "Sorry, I couldn't check your current class 😅"
	}
	if len(classes) == 0 {
		response := "No classes today! 🎉"
		cctx.Update(nil, QueryCurrentClass, response)
		return response
	}

	for _, class := range classes {
		start := TimeToMinutes(class.StartTime)
		end := TimeToMinutes(class.EndTime)
		if start <= currentMinutes && currentMinutes <= end {
			info := classInfoFromSlot(class, day)
			response := fmt.Sprintf("You're currently in %s until %s in %s 📚",
				class.Subject, class.EndTime, roomOrTBD(class.Room))
			cctx.Update(info, QueryCurrentClass, response)
			return response
		}
	}

	response := "No class right now! 😌"
	cctx.Update(nil, QueryCurrentClass, response)
	return response
}

// NextClass reports the next class starting strictly after the given
// instant, scanning forward through later days when today is done.
func (a *Assistant) NextClass(ctx context.Context, now time.Time, cctx *Context) string {
	day := currentDayCode(now)
	currentMinutes := now.Hour()*60 + now.Minute()

	classes, err := a.store.QueryTimetable(ctx, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up next class", "error", err)
		return "Sorry, I couldn't check your next class 😅"
	}

	for _, class := range classes {
		if TimeToMinutes(class.StartTime) > currentMinutes {
			info := classInfoFromSlot(class, day)
			response := fmt.Sprintf("Your next class is %s at %s in %s 📚",
				class.Subject, class.StartTime, roomOrTBD(class.Room))
			cctx.Update(info, QueryNextClass, response)
			return response
		}
	}

	// Nothing left today: first class of the next day that has any.
	for i := weekdayIndex(day) + 1; i < len(Weekdays); i++ {
		nextDayClasses, err := a.store.QueryTimetable(ctx, Weekdays[i])
		if err != nil {
			slog.ErrorContext(ctx, "failed to look up next class", "day", Weekdays[i], "error", err)
			return "Sorry, I couldn't check your next class 😅"
		}
		if len(nextDayClasses) > 0 {
			next := nextDayClasses[0]
			info := classInfoFromSlot(next, Weekdays[i])
			response := fmt.Sprintf("No more classes today! Your next class is %s at %s in %s on %s 📚",
				next.Subject, next.StartTime, roomOrTBD(next.Room), Weekdays[i])
			cctx.Update(info, QueryNextClass, response)
			return response
		}
	}

	response := "No more classes scheduled this week! 🎉"
	cctx.Update(nil, QueryNextClass, response)
	return response
}

// ClassAfter reports the class following the referenced one, looking
// into later days when the reference closes out its day.
func (a *Assistant) ClassAfter(ctx context.Context, ref *ClassInfo, cctx *Context) string {
	if ref == nil {
		return "I'm not sure which class you're referring to. Try asking about your next class first! 🤔"
	}
	if ref.Day == "" {
		return "I need more context about which day you're asking about. Try asking about a specific day or your next class! 🤔"
	}
	if ref.Period == 0 {
		return "I couldn't determine which period you're asking about. Try asking about your next class first! 🤔"
	}

	classes, err := a.store.QueryTimetable(ctx, ref.Day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up following class", "error", err)
		return "Sorry, I couldn't find the next class 😅"
	}

	foundReference := false
	for _, class := range classes {
		if foundReference {
			info := classInfoFromSlot(class, ref.Day)
			response := fmt.Sprintf("After %s, you have %s at %s in %s 📚",
				ref.Subject, class.Subject, class.StartTime, roomOrTBD(class.Room))
			cctx.Update(info, QueryAfterClass, response)
			return response
		}
		if class.Period == ref.Period {
			foundReference = true
		}
	}

	dayIndex := weekdayIndex(ref.Day)
	if dayIndex < 0 {
		return "I couldn't find the next class. Try asking about a specific day! 🤔"
	}

	for i := dayIndex + 1; i < len(Weekdays); i++ {
		nextDayClasses, err := a.store.QueryTimetable(ctx, Weekdays[i])
		if err != nil {
			slog.ErrorContext(ctx, "failed to look up following class", "day", Weekdays[i], "error", err)
			return "Sorry, I couldn't find the next class 😅"
		}
		if len(nextDayClasses) > 0 {
			next := nextDayClasses[0]
			info := classInfoFromSlot(next, Weekdays[i])
			response := fmt.Sprintf("That's your last class for %s! Your next class is %s at %s on %s in %s 📚",
				ref.Day, next.Subject, next.StartTime, Weekdays[i], roomOrTBD(next.Room))
			cctx.Update(info, QueryAfterClass, response)
			return response
		}
	}

	response := "That's your last class for the week! 🎉"
	cctx.Update(nil, QueryAfterClass, response)
	return response
}

// ScheduleForDay renders the full schedule for one day as a bulleted
// list. The caller records the mentioned day; only the query type and
// response land in the context here.
func (a *Assistant) ScheduleForDay(ctx context.Context, day string, cctx *Context) string {
	classes, err := a.store.QueryTimetable(ctx, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch day schedule", "day", day, "error", err)
		return fmt.Sprintf("Sorry, I couldn't fetch the schedule for %s 😅", day)
	}
	if len(classes) == 0 {
		return fmt.Sprintf("No classes scheduled for %s! 🎉", day)
	}

	lines := make([]string, 0, len(classes)+1)
	lines = append(lines, fmt.Sprintf("📅 Schedule for %s:", day))
	for _, class := range classes {
		lines = append(lines, fmt.Sprintf("• %s - %s: %s in %s",
			class.StartTime, class.EndTime, class.Subject, roomOrTBD(class.Room)))
	}

	response := strings.Join(lines, "\n")
	cctx.Update(nil, QueryDaySchedule, response)
	return response
}

// NthClass reports the nth class of a day, counting slots in period
// order from 1. The recorded period is the position, not the slot's
// own period, so a follow-up walks from the same list position.
func (a *Assistant) NthClass(ctx context.Context, day string, n int, cctx *Context) string {
	classes, err := a.store.QueryTimetable(ctx, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to look up nth class", "day", day, "n", n, "error", err)
		return fmt.Sprintf("Sorry, I couldn't find class %d for %s 😅", n, day)
	}
	if len(classes) == 0 {
		return fmt.Sprintf("No classes scheduled for %s 📅", day)
	}
	if n <= 0 || n > len(classes) {
		return fmt.Sprintf("You only have %d classes on %s 🤔", len(classes), day)
	}

	class := classes[n-1]
	info := classInfoFromSlot(class, day)
	info.Period = n

	response := fmt.Sprintf("Your %s class on %s is %s at %s in %s 📚",
		ordinalName(n), day, class.Subject, class.StartTime, roomOrTBD(class.Room))
	cctx.Update(info, QueryNthClass, response)
	return response
}

// matchesSubject reports whether a slot subject matches the query
// subject under loose containment, trying the synonym expansion first
// and the raw token second.
func matchesSubject(slotSubject, querySubject, fullSubject string) bool {
	upper := strings.ToUpper(slotSubject)
	return strings.Contains(upper, fullSubject) || strings.Contains(upper, strings.ToUpper(querySubject))
}

// fullSubjectName expands short forms like "ppl" to the subject name
// used in the timetable. Unknown subjects pass through uppercased.
func fullSubjectName(subject string) string {
	upper := strings.ToUpper(subject)
	if full, ok := subjectSynonyms[upper]; ok {
		return full
	}
	return upper
}

// CountSubject counts the occurrences of a subject on one day, or
// across the whole week when day is empty. The per-day week counts run
// concurrently since each one is an independent read.
func (a *Assistant) CountSubject(ctx context.Context, subject, day string) string {
	fullSubject := fullSubjectName(subject)

	if day != "" {
		classes, err := a.store.QueryTimetable(ctx, day)
		if err != nil {
			slog.ErrorContext(ctx, "failed to count subject classes", "subject", fullSubject, "day", day, "error", err)
			return fmt.Sprintf("Sorry, I couldn't count the %s classes 😅", fullSubject)
		}
		count := 0
		for _, class := range classes {
			if matchesSubject(class.Subject, subject, fullSubject) {
				count++
			}
		}
		if count > 0 {
			return fmt.Sprintf("You have %d %s %s on %s 📚", count, fullSubject, plural(count), day)
		}
		return fmt.Sprintf("You don't have any %s classes on %s 📅", fullSubject, day)
	}

	dayCounts := make([]int, len(Weekdays))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range Weekdays {
		g.Go(func() error {
			classes, err := a.store.QueryTimetable(gctx, d)
			if err != nil {
				return fmt.Errorf("count %s on %s: %w", fullSubject, d, err)
			}
			for _, class := range classes {
				if matchesSubject(class.Subject, subject, fullSubject) {
					dayCounts[i]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "failed to count subject classes", "subject", fullSubject, "error", err)
		return fmt.Sprintf("Sorry, I couldn't count the %s classes 😅", fullSubject)
	}

	total := 0
	for _, c := range dayCounts {
		total += c
	}
	if total == 0 {
		return fmt.Sprintf("You don't have any %s classes this week 📅", fullSubject)
	}

	lines := []string{fmt.Sprintf("You have %d %s %s this week:", total, fullSubject, plural(total))}
	for i, d := range Weekdays {
		if dayCounts[i] > 0 {
			lines = append(lines, fmt.Sprintf("• %s: %d %s", d, dayCounts[i], plural(dayCounts[i])))
		}
	}
	return strings.Join(lines, "\n") + " 📚"
}

// WeekSchedule renders every class day that has classes, separated by
// blank lines. Days run sequentially so context updates land in week
// order.
func (a *Assistant) WeekSchedule(ctx context.Context, cctx *Context) string {
	var days []string
	for _, d := range Weekdays {
		daySchedule := a.ScheduleForDay(ctx, d, cctx)
		if !strings.Contains(daySchedule, "No classes") {
			days = append(days, daySchedule)
		}
	}
	if len(days) == 0 {
		return "No classes scheduled this week! 🎉"
	}
	return strings.Join(days, "\n\n")
}
