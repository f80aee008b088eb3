package server

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domerrors "github.com/campuspal/schedule-assistant/internal/errors"
	"github.com/campuspal/schedule-assistant/internal/schedule"
	"github.com/campuspal/schedule-assistant/internal/sentry"
	"github.com/campuspal/schedule-assistant/internal/storage"
)

type classRequest struct {
	Day       string `json:"day" binding:"required"`
	Period    int    `json:"period" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Room      string `json:"room"`
}

func (r *classRequest) toSlot() *storage.Slot {
	return &storage.Slot{
		Day:       strings.ToUpper(r.Day),
		Period:    r.Period,
		Subject:   r.Subject,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Room:      r.Room,
	}
}

func (r *classRequest) validate() string {
	if !slices.Contains(schedule.Weekdays, strings.ToUpper(r.Day)) {
		return "day must be one of MON, TUE, WED, THU, FRI"
	}
	if r.Period <= 0 {
		return "period must be positive"
	}
	return ""
}

// bearerToken pulls the token out of an Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// RequiresAdmin guards the timetable management endpoints.
func (h *Handler) RequiresAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := h.verifier.VerifyAdmin(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domerrors.ErrUnauthorized) {
				h.log.WithError(err).Error("Admin verification failed")
				sentry.CaptureException(err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized. Admin access required."})
			return
		}

		c.Set("admin_user_id", userID)
		c.Next()
	}
}

// VerifyAdmin reports whether the presented token belongs to an admin.
func (h *Handler) VerifyAdmin(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"is_admin": false, "error": "No token provided"})
		return
	}

	_, err := h.verifier.VerifyAdmin(c.Request.Context(), token)
	if err != nil && !errors.Is(err, domerrors.ErrUnauthorized) {
		h.log.WithError(err).Error("Admin verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"is_admin": false, "error": "Authentication failed"})
		return
	}

	isAdmin := err == nil
	message := "User is not an admin"
	if isAdmin {
		message = "Admin verification successful"
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin, "message": message})
}

// ListClasses returns the whole timetable ordered by day and period.
func (h *Handler) ListClasses(c *gin.Context) {
	slots, err := h.db.AllSlots(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list classes")
		h.metrics.RecordHTTPError("store_error", "/admin/classes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": slots})
}

// ListClassesByDay returns the timetable for one day.
func (h *Handler) ListClassesByDay(c *gin.Context) {
	day := strings.ToUpper(c.Param("day"))

	slots, err := h.db.QueryTimetable(c.Request.Context(), day)
	if err != nil {
		h.log.WithError(err).Error("Failed to list classes for day")
		h.metrics.RecordHTTPError("store_error", "/admin/classes/day")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes for " + day})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": slots})
}

// AddClass inserts a new timetable slot.
func (h *Handler) AddClass(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	slot := req.toSlot()

	taken, err := h.db.SlotExists(c.Request.Context(), slot.Day, slot.Period)
	if err != nil {
		h.log.WithError(err).Error("Failed to check slot availability")
		h.metrics.RecordHTTPError("store_error", "/admin/classes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add class"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "A class already exists in this time slot"})
		return
	}

	id, err := h.db.InsertSlot(c.Request.Context(), slot)
	if err != nil {
		// UNIQUE(day, period) backstops a concurrent insert.
		if errors.Is(err, domerrors.ErrSlotConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "A class already exists in this time slot"})
			return
		}
		h.log.WithError(err).Error("Failed to add class")
		h.metrics.RecordHTTPError("store_error", "/admin/classes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add class"})
		return
	}

	slot.ID = id
	c.JSON(http.StatusCreated, gin.H{"message": "Class added successfully", "class": slot})
}

// UpdateClass replaces an existing timetable slot.
func (h *Handler) UpdateClass(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	slot := req.toSlot()
	if err := h.db.UpdateSlot(c.Request.Context(), id, slot); err != nil {
		switch {
		case errors.Is(err, domerrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		case errors.Is(err, domerrors.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "A class already exists in this time slot"})
		default:
			h.log.WithError(err).Error("Failed to update class")
			h.metrics.RecordHTTPError("store_error", "/admin/classes")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update class"})
		}
		return
	}

	slot.ID = id
	c.JSON(http.StatusOK, gin.H{"message": "Class updated successfully", "class": slot})
}

// DeleteClass removes a timetable slot.
func (h *Handler) DeleteClass(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	if err := h.db.DeleteSlot(c.Request.Context(), id); err != nil {
		if errors.Is(err, domerrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
			return
		}
		h.log.WithError(err).Error("Failed to delete class")
		h.metrics.RecordHTTPError("store_error", "/admin/classes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete class"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}
