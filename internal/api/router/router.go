package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/config"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/api/handler"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/api/middleware"
	"github.com/suplidoraindustrial6s-lab/caritas-app/pkg/redis"
)

const (
	uploadRateLimit  = 20
	uploadRateWindow = time.Minute
)

// Setup builds the gin engine with every route. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── stored photos ──
	r.GET("/images/*path", h.Upload.ServeImage)

	heavy := middleware.RateLimit(rdb, uploadRateLimit, uploadRateWindow, logger)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		groups := v1.Group("/groups")
		{
			groups.GET("", h.Group.ListGroups)
			groups.GET("/:id", h.Group.GetGroup)
			groups.POST("/seed", h.Group.SeedGroups)
		}

		beneficiaries := v1.Group("/beneficiaries")
		{
			beneficiaries.GET("", h.Beneficiary.ListBeneficiaries)
			beneficiaries.POST("", h.Beneficiary.CreateBeneficiary)
			beneficiaries.GET("/:id", h.Beneficiary.GetBeneficiary)
			beneficiaries.PUT("/:id", h.Beneficiary.UpdateBeneficiary)
			beneficiaries.PUT("/:id/group", h.Beneficiary.MoveBeneficiary)
			beneficiaries.PUT("/:id/status", h.Beneficiary.SetStatus)
		}

		attendances := v1.Group("/attendances")
		{
			attendances.POST("", h.Attendance.RegisterAttendance)
			attendances.GET("", h.Attendance.ListAttendance)
		}

		schedule := v1.Group("/schedule")
		{
			schedule.GET("", h.Schedule.GetCalendar)
			schedule.GET("/year/:year", h.Schedule.GetYear)
			schedule.GET("/days/:date", h.Schedule.GetDay)
			schedule.PUT("/days/:date", h.Schedule.UpdateDay)
			schedule.PUT("/days/:date/holiday", h.Schedule.MarkHoliday)
			schedule.POST("/seed", h.Schedule.SeedYear)
		}

		serviceDays := v1.Group("/service-days")
		{
			serviceDays.POST("/close", h.ServiceDay.CloseDay)
			serviceDays.GET("/report", h.ServiceDay.GetDayReport)
		}

		holidays := v1.Group("/holidays")
		{
			holidays.GET("", h.Holiday.ListHolidays)
			holidays.POST("", h.Holiday.CreateHoliday)
			holidays.DELETE("/:id", h.Holiday.DeleteHoliday)
			holidays.POST("/import", heavy, h.Holiday.ImportICS)
		}

		v1.POST("/import", heavy, h.Import.ImportWorkbook)
		v1.POST("/uploads/photo", heavy, h.Upload.UploadPhoto)

		v1.GET("/reports", h.Report.GetReports)
		v1.GET("/dashboard", h.Report.GetDashboard)

		export := v1.Group("/export")
		export.Use(heavy)
		{
			export.GET("/signatures", h.Export.ExportSignatures)
			export.GET("/day-report", h.Export.ExportDayReport)
			export.GET("/calendar.ics", h.Export.ExportCalendar)
		}
	}

	return r
}
