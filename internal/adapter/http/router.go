package http

import (
	"time"

	"oalass-backend/internal/adapter/middleware"
	"oalass-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handlers groups every resource handler mounted by Register.
type Handlers struct {
	Health    *Handler
	Auth      *AuthHandler
	Accounts  *AccountHandler
	Catalog   *CatalogHandler
	Periods   *PeriodHandler
	Leave     *LeaveHandler
	Travel    *TravelHandler
	Probation *ProbationHandler
	Dashboard *DashboardHandler
}

type RouterConfig struct {
	Authenticator  middleware.Authenticator
	LoginLimiter   *middleware.IPLimiter
	Redis          *redis.Client
	IdempotencyTTL time.Duration
	Log            *zap.Logger
}

func Register(e *echo.Echo, h Handlers, cfg RouterConfig) {
	e.GET("/health", h.Health.Health)
	e.POST("/auth/login", h.Auth.Login, middleware.RateLimit(cfg.LoginLimiter))

	api := e.Group("", middleware.JWTAuth(cfg.Authenticator), middleware.Idempotency(cfg.Redis, cfg.IdempotencyTTL, cfg.Log))
	admin := middleware.RequireRoles(user.RoleAdmin)
	applicant := middleware.RequireRoles(user.RoleTeacher, user.RoleDean, user.RoleFinance)
	reviewer := middleware.RequireRoles(user.RoleDean, user.RoleFinance, user.RoleAdmin)

	api.GET("/auth/me", h.Auth.Me)
	api.POST("/auth/password", h.Auth.ChangePassword)
	api.GET("/dashboard", h.Dashboard.Summary)

	// reference data
	api.GET("/roles", h.Catalog.Roles)
	api.GET("/departments", h.Catalog.Departments)
	api.POST("/departments", h.Catalog.CreateDepartment, admin)
	api.GET("/statuses", h.Catalog.Statuses)
	api.POST("/statuses", h.Catalog.CreateStatus, admin)
	api.GET("/leave-types", h.Catalog.LeaveTypes)
	api.POST("/leave-types", h.Catalog.CreateLeaveType, admin)

	api.GET("/periods", h.Periods.List)
	api.GET("/periods/current", h.Periods.Current)
	api.GET("/periods/:id", h.Periods.Get)
	api.POST("/periods", h.Periods.Create, admin)
	api.POST("/periods/:id/current", h.Periods.SetCurrent, admin)

	users := api.Group("/users", admin)
	users.GET("", h.Accounts.List)
	users.POST("", h.Accounts.Create)
	users.GET("/:user_id", h.Accounts.Get)
	users.PATCH("/:user_id", h.Accounts.Update)
	users.POST("/:user_id/activate", h.Accounts.Activate)
	users.POST("/:user_id/deactivate", h.Accounts.Deactivate)
	users.POST("/:user_id/reset-password", h.Accounts.ResetPassword)
	users.GET("/:user_id/leave-balances", h.Leave.UserBalances)
	users.POST("/:user_id/leave-balances/recompute", h.Leave.Recompute)

	api.GET("/leave-limits", h.Leave.Limits, admin)
	api.PUT("/leave-limits", h.Leave.UpsertLimit, admin)
	api.DELETE("/leave-limits/:id", h.Leave.DeleteLimit, admin)
	api.GET("/leave-balances/me", h.Leave.MyBalances)

	leaves := api.Group("/leave-applications")
	leaves.POST("", h.Leave.Submit, applicant)
	leaves.GET("", h.Leave.List, admin)
	leaves.GET("/mine", h.Leave.Mine)
	leaves.GET("/queue", h.Leave.Queue, reviewer)
	leaves.GET("/:application_id", h.Leave.Get)
	leaves.POST("/:application_id/cancel", h.Leave.Cancel)
	leaves.POST("/:application_id/review", h.Leave.Review, reviewer)

	travels := api.Group("/travel-orders")
	travels.POST("", h.Travel.Submit, applicant)
	travels.GET("", h.Travel.List, admin)
	travels.GET("/mine", h.Travel.Mine)
	travels.GET("/queue", h.Travel.Queue, reviewer)
	travels.GET("/:order_id", h.Travel.Get)
	travels.POST("/:order_id/cancel", h.Travel.Cancel)
	travels.POST("/:order_id/review", h.Travel.Review, reviewer)

	probations := api.Group("/probations", admin)
	probations.GET("", h.Probation.List)
	probations.POST("", h.Probation.Start)
	probations.GET("/due", h.Probation.Due)
	probations.POST("/notify-due", h.Probation.NotifyDue)
	probations.GET("/:id", h.Probation.Get)
	probations.POST("/:id/extend", h.Probation.Extend)
	probations.POST("/:id/complete", h.Probation.Complete)
	probations.POST("/:id/terminate", h.Probation.Terminate)
}
