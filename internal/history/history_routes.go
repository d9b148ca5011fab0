package history

import (
	"github.com/gin-gonic/gin"

	"github.com/kaleab-kali/FPPMS-sub005/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	events := r.Group("/progression-history")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "history", "read"),
			handler.EventsInRange,
		)
		events.GET("/employees/:employeeId",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "history", "read"),
			handler.Timeline,
		)
		events.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "history", "read"),
			handler.GetByID,
		)
	}
}
