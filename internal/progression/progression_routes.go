package progression

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kaleab-kali/FPPMS-sub005/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	progressions := r.Group("/progressions")
	progressions.Use(middleware.AuthMiddleware())
	{
		progressions.POST("/:id/process",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "progression", "process"),
			handler.ProcessSingle,
		)
		progressions.POST("/batch",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "progression", "process"),
			middleware.Idempotency(rdb),
			handler.ProcessBatch,
		)
		progressions.POST("/:id/reject",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "progression", "process"),
			handler.Reject,
		)
		progressions.POST("/manual-jump",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "progression", "override"),
			handler.ManualJump,
		)
	}
}
