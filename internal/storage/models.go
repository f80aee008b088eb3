package storage

// Slot represents one timetabled period
type Slot struct {
	ID        int64  `json:"id"`
	Day       string `json:"day"`
	Period    int    `json:"period"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
	Room      string `json:"room"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// Course represents a catalog course record
type Course struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Semester    string `json:"semester"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// CourseSchedule represents one scheduled meeting of a catalog course
type CourseSchedule struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"course_code"`
	DayOfWeek  string `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}
