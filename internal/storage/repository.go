package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
)

// weekday ordering used when listing the whole timetable
const dayOrderCase = `CASE day
	WHEN 'MON' THEN 1
	WHEN 'TUE' THEN 2
	WHEN 'WED' THEN 3
	WHEN 'THU' THEN 4
	WHEN 'FRI' THEN 5
	ELSE 6
END`

// QueryTimetable retrieves timetable slots sorted ascending by period.
// An empty day returns every slot in the table. The result is never nil
// on success; an empty day yields an empty slice.
func (db *DB) QueryTimetable(ctx context.Context, day string) ([]Slot, error) {
	start := time.Now()

	var rows *sql.Rows
	var err error
	if day == "" {
		query := `SELECT id, day, period, start_time, end_time, subject, room, created_at
			FROM timetable ORDER BY period ASC`
		rows, err = db.conn.QueryContext(ctx, query)
	} else {
		query := `SELECT id, day, period, start_time, end_time, subject, room, created_at
			FROM timetable WHERE day = ? ORDER BY period ASC`
		rows, err = db.conn.QueryContext(ctx, query, day)
	}
	if err != nil {
		db.recordStore("timetable", "error", start)
		slog.ErrorContext(ctx, "failed to query timetable",
			"day", day,
			"error", err)
		return nil, domerrors.NewStoreError("timetable", "query", err)
	}
	defer func() { _ = rows.Close() }()

	slots := make([]Slot, 0, 8)
	for rows.Next() {
		var s Slot
		var room sql.NullString
		if err := rows.Scan(&s.ID, &s.Day, &s.Period, &s.StartTime, &s.EndTime, &s.Subject, &room, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		s.Room = room.String
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		db.recordStore("timetable", "error", start)
		return nil, domerrors.NewStoreError("timetable", "query", err)
	}
	db.recordStore("timetable", "success", start)

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database query",
			"operation", "QueryTimetable",
			"duration_ms", duration.Milliseconds(),
			"day", day,
			"result_count", len(slots))
	}

	return slots, nil
}

// AllSlots retrieves every timetable slot ordered by weekday then period.
// Used by the admin listing endpoint.
func (db *DB) AllSlots(ctx context.Context) ([]Slot, error) {
	query := `SELECT id, day, period, start_time, end_time, subject, room, created_at
		FROM timetable ORDER BY ` + dayOrderCase + `, period ASC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, domerrors.NewStoreError("timetable", "list", err)
	}
	defer func() { _ = rows.Close() }()

	var slots []Slot
	for rows.Next() {
		var s Slot
		var room sql.NullString
		if err := rows.Scan(&s.ID, &s.Day, &s.Period, &s.StartTime, &s.EndTime, &s.Subject, &room, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		s.Room = room.String
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// SlotExists reports whether a slot already occupies the given day and period.
func (db *DB) SlotExists(ctx context.Context, day string, period int) (bool, error) {
	query := `SELECT COUNT(*) FROM timetable WHERE day = ? AND period = ?`

	var count int
	if err := db.conn.QueryRowContext(ctx, query, day, period).Scan(&count); err != nil {
		return false, domerrors.NewStoreError("timetable", "exists", err)
	}
	return count > 0, nil
}

// InsertSlot adds a new timetable slot and returns its ID.
// Returns ErrSlotConflict when the day/period pair is already taken.
func (db *DB) InsertSlot(ctx context.Context, slot *Slot) (int64, error) {
	query := `INSERT INTO timetable (day, period, start_time, end_time, subject, room, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := db.conn.ExecContext(ctx, query,
		slot.Day, slot.Period, slot.StartTime, slot.EndTime, slot.Subject, slot.Room, time.Now().Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, domerrors.ErrSlotConflict
		}
		slog.ErrorContext(ctx, "failed to insert slot",
			"day", slot.Day,
			"period", slot.Period,
			"error", err)
		return 0, domerrors.NewStoreError("timetable", "insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UpdateSlot replaces an existing slot's fields.
// Returns ErrNotFound if no slot has the given ID.
func (db *DB) UpdateSlot(ctx context.Context, id int64, slot *Slot) error {
	query := `UPDATE timetable
		SET day = ?, period = ?, start_time = ?, end_time = ?, subject = ?, room = ?
		WHERE id = ?`

	res, err := db.conn.ExecContext(ctx, query,
		slot.Day, slot.Period, slot.StartTime, slot.EndTime, slot.Subject, slot.Room, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domerrors.ErrSlotConflict
		}
		return domerrors.NewStoreError("timetable", "update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// DeleteSlot removes a slot by ID.
// Returns ErrNotFound if no slot has the given ID.
func (db *DB) DeleteSlot(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM timetable WHERE id = ?`, id)
	if err != nil {
		return domerrors.NewStoreError("timetable", "delete", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// CountSlots returns the total number of timetable slots.
func (db *DB) CountSlots(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM timetable`).Scan(&count); err != nil {
		return 0, domerrors.NewStoreError("timetable", "count", err)
	}
	return count, nil
}

// ListCourses retrieves all catalog courses.
func (db *DB) ListCourses(ctx context.Context) ([]Course, error) {
	query := `SELECT code, name, description, semester, created_at FROM courses ORDER BY code`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, domerrors.NewStoreError("courses", "list", err)
	}
	defer func() { _ = rows.Close() }()

	courses := make([]Course, 0)
	for rows.Next() {
		var c Course
		var desc sql.NullString
		if err := rows.Scan(&c.Code, &c.Name, &desc, &c.Semester, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		c.Description = desc.String
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse retrieves a course by code.
// Returns ErrNotFound when the code is unknown.
func (db *DB) GetCourse(ctx context.Context, code string) (*Course, error) {
	query := `SELECT code, name, description, semester, created_at FROM courses WHERE code = ?`

	var c Course
	var desc sql.NullString
	err := db.conn.QueryRowContext(ctx, query, code).Scan(&c.Code, &c.Name, &desc, &c.Semester, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domerrors.ErrNotFound
	}
	if err != nil {
		return nil, domerrors.NewStoreError("courses", "get", err)
	}
	c.Description = desc.String
	return &c, nil
}

// InsertCourse adds a new catalog course.
func (db *DB) InsertCourse(ctx context.Context, course *Course) error {
	query := `INSERT INTO courses (code, name, description, semester, created_at) VALUES (?, ?, ?, ?, ?)`

	if _, err := db.conn.ExecContext(ctx, query,
		course.Code, course.Name, course.Description, course.Semester, time.Now().Unix()); err != nil {
		slog.ErrorContext(ctx, "failed to insert course",
			"code", course.Code,
			"error", err)
		return domerrors.NewStoreError("courses", "insert", err)
	}
	return nil
}

// ListCourseSchedules retrieves the schedule entries for a course.
func (db *DB) ListCourseSchedules(ctx context.Context, courseCode string) ([]CourseSchedule, error) {
	query := `SELECT id, course_code, day_of_week, start_time, end_time, room, instructor, created_at
		FROM course_schedules WHERE course_code = ? ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, query, courseCode)
	if err != nil {
		return nil, domerrors.NewStoreError("course_schedules", "list", err)
	}
	defer func() { _ = rows.Close() }()

	schedules := make([]CourseSchedule, 0)
	for rows.Next() {
		var cs CourseSchedule
		var room, instructor sql.NullString
		if err := rows.Scan(&cs.ID, &cs.CourseCode, &cs.DayOfWeek, &cs.StartTime, &cs.EndTime, &room, &instructor, &cs.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course schedule: %w", err)
		}
		cs.Room = room.String
		cs.Instructor = instructor.String
		schedules = append(schedules, cs)
	}
	return schedules, rows.Err()
}

// InsertCourseSchedule adds a schedule entry for a course and returns its ID.
func (db *DB) InsertCourseSchedule(ctx context.Context, cs *CourseSchedule) (int64, error) {
	query := `INSERT INTO course_schedules (course_code, day_of_week, start_time, end_time, room, instructor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := db.conn.ExecContext(ctx, query,
		cs.CourseCode, cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.Room, cs.Instructor, time.Now().Unix())
	if err != nil {
		return 0, domerrors.NewStoreError("course_schedules", "insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// UpdateCourseSchedule updates an existing schedule entry for a course.
// Returns ErrNotFound when the entry does not exist for that course.
func (db *DB) UpdateCourseSchedule(ctx context.Context, courseCode string, id int64, cs *CourseSchedule) error {
	query := `UPDATE course_schedules
		SET day_of_week = ?, start_time = ?, end_time = ?, room = ?, instructor = ?
		WHERE id = ? AND course_code = ?`

	res, err := db.conn.ExecContext(ctx, query,
		cs.DayOfWeek, cs.StartTime, cs.EndTime, cs.Room, cs.Instructor, id, courseCode)
	if err != nil {
		return domerrors.NewStoreError("course_schedules", "update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// DeleteCourseSchedule removes a schedule entry for a course.
// Returns ErrNotFound when the entry does not exist for that course.
func (db *DB) DeleteCourseSchedule(ctx context.Context, courseCode string, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM course_schedules WHERE id = ? AND course_code = ?`, id, courseCode)
	if err != nil {
		return domerrors.NewStoreError("course_schedules", "delete", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domerrors.ErrNotFound
	}
	return nil
}

// GetUserRole retrieves the role for a user ID.
// Returns ErrNotFound for unknown users.
func (db *DB) GetUserRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := db.conn.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return "", domerrors.ErrNotFound
	}
	if err != nil {
		return "", domerrors.NewStoreError("user_roles", "get", err)
	}
	return role, nil
}

// SetUserRole inserts or updates the role for a user ID.
func (db *DB) SetUserRole(ctx context.Context, userID, role string) error {
	query := `INSERT INTO user_roles (user_id, role) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`

	if _, err := db.conn.ExecContext(ctx, query, userID, role); err != nil {
		return domerrors.NewStoreError("user_roles", "set", err)
	}
	return nil
}
