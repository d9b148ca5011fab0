package eligibility

import (
	"github.com/gin-gonic/gin"

	"github.com/kaleab-kali/FPPMS-sub005/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	records := r.Group("/eligibility")
	records.Use(middleware.AuthMiddleware())
	{
		records.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "progression", "read"),
			handler.GetAll,
		)
		records.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "progression", "read"),
			handler.GetByID,
		)
		records.POST("/evaluate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "progression", "evaluate"),
			handler.Evaluate,
		)
		records.POST("/:id/approve",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "progression", "approve"),
			handler.Approve,
		)
	}
}
