package router // package router defines how HTTP routes are registered for the API

import (
	"database/sql"

	"github.com/labstack/echo/v4" // Echo web framework used for routing
	"github.com/redis/go-redis/v9"

	"photobooking/internal/config"
	"photobooking/internal/handler"
	"photobooking/internal/middleware"
	"photobooking/internal/model"
	"photobooking/internal/repository"
)

// Handlers bundles every handler the routes need so registration stays a
// single call from main.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Classes    *handler.ClassHandler
	Selections *handler.SelectionHandler
	Payments   *handler.PaymentHandler
}

// RegisterRoutes wires the complete HTTP surface.  Public endpoints are
// registered bare; protected endpoints get the JWT middleware plus, where
// required, a role gate that re-reads the caller's role from the identity
// store on every request.
func RegisterRoutes(e *echo.Echo, cfg config.Config, db *sql.DB, users *repository.UserRepo, rdb *redis.Client, h Handlers) {
	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(users, model.RoleAdmin)
	instructorOnly := middleware.RequireRole(users, model.RoleInstructor)
	listingCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Liveness for load balancers; includes a DB ping.
	e.GET("/healthz", handler.Health(db))

	// Identity exchange and registration are open: the browser-side auth
	// provider has already verified the email before these are called.
	e.POST("/jwt", h.Auth.IssueToken)
	e.POST("/users", h.Users.Register)

	// Role flags answer only for the caller's own identity.
	e.GET("/users/admin/:email", h.Auth.AdminFlag, jwtAuth)
	e.GET("/users/instructor/:email", h.Auth.InstructorFlag, jwtAuth)

	// Admin-only user management.
	e.GET("/all-users", h.Users.ListAll, jwtAuth, adminOnly)
	e.PATCH("/user/admin/:id", h.Users.SetRole, jwtAuth, adminOnly)

	// Class catalog: browsing is public (and cached); submission is
	// instructor-gated; moderation is admin-gated.
	e.GET("/all-classes", h.Classes.ListAll, listingCache)
	e.GET("/approved-class", h.Classes.ListApproved, listingCache)
	e.POST("/class", h.Classes.Submit, jwtAuth, instructorOnly)
	e.PATCH("/class-status/:id", h.Classes.SetStatus, jwtAuth, adminOnly)
	e.PATCH("/feedback/:id", h.Classes.SetFeedback, jwtAuth, adminOnly)

	// Selection ledger, scoped to the authenticated student.
	e.POST("/userSelectedClass", h.Selections.Add, jwtAuth)
	e.GET("/selectedClasses", h.Selections.List, jwtAuth)
	e.DELETE("/selectedClasses/:id", h.Selections.Remove, jwtAuth)

	// Two-phase checkout plus payment history.
	e.POST("/create-payment-intent", h.Payments.CreateIntent, jwtAuth)
	e.POST("/payments", h.Payments.Settle, jwtAuth)
	e.GET("/payments", h.Payments.History, jwtAuth)
}
