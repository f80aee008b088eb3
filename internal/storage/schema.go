package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go's New function.
func InitSchema(db *sql.DB) error {
	if err := createTimetableTable(db); err != nil {
		return err
	}

	if err := createCoursesTable(db); err != nil {
		return err
	}

	if err := createCourseSchedulesTable(db); err != nil {
		return err
	}

	return createUserRolesTable(db)
}

// createTimetableTable creates the canonical timetable table.
// The UNIQUE(day, period) index enforces at most one slot per period per day;
// cross-day follow-up resolution depends on that guarantee.
func createTimetableTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS timetable (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day TEXT NOT NULL CHECK(day IN ('MON', 'TUE', 'WED', 'THU', 'FRI')),
		period INTEGER NOT NULL CHECK(period > 0),
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		subject TEXT NOT NULL,
		room TEXT,
		created_at INTEGER NOT NULL,
		UNIQUE(day, period)
	);
	CREATE INDEX IF NOT EXISTS idx_timetable_day ON timetable(day);
	CREATE INDEX IF NOT EXISTS idx_timetable_subject ON timetable(subject);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create timetable table: %w", err)
	}

	return nil
}

func createCoursesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS courses (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		semester TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_courses_semester ON courses(semester);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}

	return nil
}

func createCourseSchedulesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS course_schedules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course_code TEXT NOT NULL REFERENCES courses(code) ON DELETE CASCADE,
		day_of_week TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		room TEXT,
		instructor TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_course_schedules_code ON course_schedules(course_code);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create course_schedules table: %w", err)
	}

	return nil
}

func createUserRolesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT PRIMARY KEY,
		role TEXT NOT NULL CHECK(role IN ('admin', 'student'))
	);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create user_roles table: %w", err)
	}

	return nil
}
