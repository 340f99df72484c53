package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Syedfarrukh0/rfid-backend-prac/config"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/api/handler"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/api/middleware"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/jwt"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware wired.
func Setup(cfg *config.Config, h *handler.Handler, svc *service.Service, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth module, public
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// terminal-facing routes, device-credential auth
		device := v1.Group("")
		device.Use(middleware.DeviceAuth(svc.Device))
		{
			device.POST("/attendance/scan", h.Attendance.Scan)
			device.POST("/devices/heartbeat", h.Device.Heartbeat)
			device.POST("/devices/wifi-scan", h.Device.SubmitWifiScan)
		}

		// operator routes, JWT auth
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/password", h.Auth.ChangePassword)

			// user module
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("superadmin", "admin"), h.User.List)
				users.GET("/:id", middleware.RoleAuth("superadmin", "admin"), h.User.Get)
				users.PATCH("/:id", h.User.Update) // admin or self, checked in service
				users.DELETE("/:id", middleware.RoleAuth("superadmin", "admin"), h.User.Delete)
				users.PUT("/:id/role", middleware.RoleAuth("superadmin"), h.User.AssignRole)
			}

			// badge cards
			authorized.POST("/cards", h.Attendance.RegisterCard)

			// attendance reporting
			attendanceGroup := authorized.Group("/attendance")
			{
				attendanceGroup.GET("/today", h.Attendance.Today)
				attendanceGroup.GET("/users/:id", h.Attendance.UserRecords)
			}

			// weekly schedules
			schedules := authorized.Group("/schedules")
			{
				schedules.PUT("", h.Schedule.Set)
				schedules.GET("/:id", h.Schedule.Get)
			}

			// device administration
			devices := authorized.Group("/devices")
			{
				devices.POST("", middleware.RoleAuth("superadmin", "admin"), h.Device.RegisterBatch)
				devices.GET("", h.Device.List)
				devices.POST("/assign", h.Device.Assign)
				devices.GET("/:uuid/status", h.Device.Status)
				devices.POST("/:uuid/connect", h.Device.QueueConnect)
				devices.GET("/:uuid/wifi-scan", h.Device.WifiScan)
			}

			// exports
			export := authorized.Group("/export")
			{
				export.GET("/attendance", h.Export.ExportAttendance)
				export.GET("/schedules/:id/ics", h.Export.ExportScheduleICS)
			}
		}
	}

	return r
}
