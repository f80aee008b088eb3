package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires every endpoint onto the router. The admin API
// only appears when a JWT secret is configured.
func (h *Handler) RegisterRoutes(router *gin.Engine, registry *prometheus.Registry) {
	router.GET("/healthz", h.Healthz)
	router.HEAD("/healthz", h.Healthz)
	router.GET("/ready", h.Ready)
	router.HEAD("/ready", h.Ready)

	router.POST("/process-voice", h.ProcessVoice)

	if h.verifier.Enabled() {
		router.GET("/admin/verify", h.VerifyAdmin)

		admin := router.Group("/admin", h.RequiresAdmin())
		admin.GET("/classes", h.ListClasses)
		admin.POST("/classes", h.AddClass)
		admin.PUT("/classes/:id", h.UpdateClass)
		admin.DELETE("/classes/:id", h.DeleteClass)
		admin.GET("/classes/day/:day", h.ListClassesByDay)
	}

	api := router.Group("/api")
	api.GET("/courses", h.ListCourses)
	api.POST("/courses", h.AddCourse)
	api.GET("/courses/:code/schedule", h.ListCourseSchedule)
	api.POST("/courses/:code/schedule", h.AddCourseSchedule)
	api.PUT("/courses/:code/schedule/:id", h.UpdateCourseSchedule)
	api.DELETE("/courses/:code/schedule/:id", h.DeleteCourseSchedule)
	api.POST("/documents/summarize", h.SummarizeDocument)

	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if h.cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			h.cfg.MetricsUsername: h.cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
