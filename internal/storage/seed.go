package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type seedSlot struct {
	day     string
	period  int
	start   string
	end     string
	subject string
	room    string
}

// sampleTimetable is the demo weekly schedule loaded on first boot.
var sampleTimetable = []seedSlot{
	{"MON", 2, "9:50", "10:40", "SOFT SKILLS", "S302/S303"},
	{"MON", 3, "10:50", "11:40", "DISTRIBUTED SYSTEMS", "FF LAB"},
	{"MON", 5, "12:30", "1:20", "LUNCH", ""},
	{"MON", 6, "1:20", "2:10", "CLOUD", "N106"},
	{"MON", 7, "2:10", "3:00", "DISTRIBUTED SYSTEMS", "N106"},
	{"MON", 9, "4:00", "4:50", "CLOUD", "N106"},
	{"TUE", 1, "9:00", "9:50", "DISTRIBUTED SYSTEMS", "N106"},
	{"TUE", 2, "9:50", "10:40", "COMPUTER SECURITY", "N302"},
	{"TUE", 3, "10:50", "11:40", "PRINCIPLES OF PL", "N106"},
	{"TUE", 5, "12:30", "1:20", "SOFTWARE ENGG", "N106"},
	{"WED", 2, "9:50", "10:40", "COMPUTER SECURITY", "N106"},
	{"WED", 5, "12:30", "1:20", "SOFTWARE ENGG", "N106"},
	{"WED", 6, "1:20", "2:10", "FULL STACK", "N103"},
	{"WED", 7, "2:10", "3:00", "WIRELESS", "N106"},
	{"THU", 1, "9:00", "9:50", "PRINCIPLES OF PL", "N306"},
	{"THU", 2, "9:50", "10:40", "FULL STACK", "N103"},
	{"THU", 3, "10:50", "11:40", "WIRELESS", "N106"},
	{"THU", 4, "11:40", "12:30", "SNS", "N103"},
	{"THU", 5, "12:30", "1:20", "LUNCH", ""},
	{"THU", 6, "1:20", "2:10", "DISTRIBUTED SYSTEMS", "N106"},
	{"THU", 7, "2:10", "3:00", "CLOUD", "N106"},
	{"THU", 8, "3:10", "4:00", "SOFTWARE ENGG", "A207 B"},
	{"FRI", 1, "9:00", "9:50", "VERBAL", "N301 | N309 B"},
	{"FRI", 2, "9:50", "10:40", "FULL STACK", "N103"},
	{"FRI", 3, "10:50", "11:40", "WIRELESS", "N106"},
	{"FRI", 4, "11:40", "12:30", "COMPUTER SECURITY", "N302"},
	{"FRI", 5, "12:30", "1:20", "LUNCH", ""},
	{"FRI", 6, "1:20", "2:10", "SNS", "N103"},
	{"FRI", 7, "2:10", "3:00", "SNA", "N106"},
	{"FRI", 8, "3:10", "4:00", "APTITUDE", "N307"},
}

// SeedSampleTimetable loads the demo schedule into an empty timetable.
// It is a no-op when the table already has rows, so restarts keep any
// admin edits instead of resetting them.
func (db *DB) SeedSampleTimetable(ctx context.Context) error {
	count, err := db.CountSlots(ctx)
	if err != nil {
		return fmt.Errorf("count slots before seed: %w", err)
	}
	if count > 0 {
		slog.DebugContext(ctx, "timetable already populated, skipping seed",
			"slot_count", count)
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO timetable
		(day, period, start_time, end_time, subject, room, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, s := range sampleTimetable {
		if _, err := stmt.ExecContext(ctx, s.day, s.period, s.start, s.end, s.subject, s.room, now); err != nil {
			return fmt.Errorf("seed slot %s period %d: %w", s.day, s.period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	slog.InfoContext(ctx, "seeded sample timetable",
		"slot_count", len(sampleTimetable))
	return nil
}
