package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
	"github.com/campuspal/schedule-assistant/internal/storage"
)

type courseRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Semester    string `json:"semester" binding:"required"`
}

type courseScheduleRequest struct {
	DayOfWeek  string `json:"day_of_week" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Room       string `json:"room"`
	Instructor string `json:"instructor"`
}

// ListCourses returns the course catalog.
func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.db.ListCourses(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list courses")
		h.metrics.RecordHTTPError("store_error", "/api/courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses"})
		return
	}
	c.JSON(http.StatusOK, courses)
}

// AddCourse inserts a new catalog course.
func (h *Handler) AddCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	course := &storage.Course{
		Code:        strings.ToUpper(req.Code),
		Name:        req.Name,
		Description: req.Description,
		Semester:    req.Semester,
	}
	if err := h.db.InsertCourse(c.Request.Context(), course); err != nil {
		h.log.WithError(err).Error("Failed to add course")
		h.metrics.RecordHTTPError("store_error", "/api/courses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add course"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course added successfully", "course": course})
}

// ListCourseSchedule returns the schedule entries for one course.
func (h *Handler) ListCourseSchedule(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	schedules, err := h.db.ListCourseSchedules(c.Request.Context(), code)
	if err != nil {
		h.log.WithError(err).Error("Failed to list course schedule")
		h.metrics.RecordHTTPError("store_error", "/api/courses/schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// AddCourseSchedule adds a schedule entry for one course.
func (h *Handler) AddCourseSchedule(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	var req courseScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if _, err := h.db.GetCourse(c.Request.Context(), code); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		h.log.WithError(err).Error("Failed to look up course")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add schedule"})
		return
	}

	cs := &storage.CourseSchedule{
		CourseCode: code,
		DayOfWeek:  strings.ToUpper(req.DayOfWeek),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
		Instructor: req.Instructor,
	}
	id, err := h.db.InsertCourseSchedule(c.Request.Context(), cs)
	if err != nil {
		h.log.WithError(err).Error("Failed to add course schedule")
		h.metrics.RecordHTTPError("store_error", "/api/courses/schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add schedule"})
		return
	}

	cs.ID = id
	c.JSON(http.StatusOK, gin.H{"message": "Schedule added successfully", "schedule": cs})
}

// UpdateCourseSchedule updates a schedule entry for one course.
func (h *Handler) UpdateCourseSchedule(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var req courseScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	cs := &storage.CourseSchedule{
		CourseCode: code,
		DayOfWeek:  strings.ToUpper(req.DayOfWeek),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Room:       req.Room,
		Instructor: req.Instructor,
	}
	if err := h.db.UpdateCourseSchedule(c.Request.Context(), code, id, cs); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
			return
		}
		h.log.WithError(err).Error("Failed to update course schedule")
		h.metrics.RecordHTTPError("store_error", "/api/courses/schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
		return
	}

	cs.ID = id
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated successfully", "schedule": cs})
}

// DeleteCourseSchedule removes a schedule entry for one course.
func (h *Handler) DeleteCourseSchedule(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	if err := h.db.DeleteCourseSchedule(c.Request.Context(), code, id); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
			return
		}
		h.log.WithError(err).Error("Failed to delete course schedule")
		h.metrics.RecordHTTPError("store_error", "/api/courses/schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
