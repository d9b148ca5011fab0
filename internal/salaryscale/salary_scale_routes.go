package salaryscale

import (
	"github.com/gin-gonic/gin"

	"github.com/kaleab-kali/FPPMS-sub005/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	scales := r.Group("/salary-scales")
	scales.Use(middleware.AuthMiddleware())
	{
		scales.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_scale", "read"),
			handler.GetAll,
		)
		scales.GET("/resolve",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "salary_scale", "read"),
			handler.ResolveSalary,
		)
		scales.GET("/:id",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "salary_scale", "read"),
			handler.GetByID,
		)
		scales.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_scale", "update"),
			handler.Create,
		)
		scales.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_scale", "update"),
			handler.Update,
		)
		scales.POST("/:id/activate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "salary_scale", "activate"),
			handler.Activate,
		)
		scales.POST("/:id/archive",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "salary_scale", "activate"),
			handler.Archive,
		)
		scales.POST("/:id/duplicate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_scale", "update"),
			handler.Duplicate,
		)
	}
}
