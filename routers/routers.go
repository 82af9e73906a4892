package routers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"net/http"
	"storefront/handlers"
	"storefront/middleware"
	"storefront/services"
	"time"
)

type Services struct {
	Identity *services.IdentityService
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Admin    *services.AdminService
	Media    *services.MediaService
}

// SetupRouters wires every route; uploadDir is served under /uploads when non-empty.
func SetupRouters(svc Services, uploadDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	_ = router.SetTrustedProxies(nil)

	if uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}

	router.GET("/health", handlers.HealthHandler)

	// accounts
	router.POST("/register", func(c *gin.Context) {
		handlers.RegisterHandler(c, svc.Identity)
	})
	router.POST("/login", func(c *gin.Context) {
		handlers.LoginHandler(c, svc.Identity)
	})
	router.POST("/forgot-password", func(c *gin.Context) {
		handlers.ForgotPasswordHandler(c, svc.Identity)
	})

	user := router.Group("/User")
	{
		user.GET("/:id", func(c *gin.Context) {
			handlers.GetUserProfileHandler(c, svc.Identity)
		})
		user.PUT("/:id", func(c *gin.Context) {
			handlers.UpdateUserProfileHandler(c, svc.Identity)
		})
		user.PUT("/:id/change-password", func(c *gin.Context) {
			handlers.ChangePasswordHandler(c, svc.Identity)
		})
		user.DELETE("/:id/delete-account", func(c *gin.Context) {
			handlers.DeleteAccountHandler(c, svc.Identity)
		})
		user.POST("/:id/upload-image", func(c *gin.Context) {
			handlers.UploadProfileImageHandler(c, svc.Media)
		})
	}

	router.POST("/uploads-images", func(c *gin.Context) {
		handlers.UploadImagesHandler(c, svc.Media)
	})

	// catalog
	router.POST("/products", func(c *gin.Context) {
		handlers.CreateProductHandler(c, svc.Catalog)
	})
	router.GET("/products", func(c *gin.Context) {
		handlers.GetProductListHandler(c, svc.Catalog)
	})
	router.PUT("/product/update/:id", func(c *gin.Context) {
		handlers.UpdateProductHandler(c, svc.Catalog)
	})
	router.DELETE("/products/:id", func(c *gin.Context) {
		handlers.DeleteProductHandler(c, svc.Catalog)
	})

	// cart
	router.POST("/cart", func(c *gin.Context) {
		handlers.AddToCartHandler(c, svc.Cart)
	})
	router.GET("/cart/:userId", func(c *gin.Context) {
		handlers.GetCartHandler(c, svc.Cart)
	})
	router.PUT("/cart/:userId/:productId", func(c *gin.Context) {
		handlers.UpdateCartItemQuantityHandler(c, svc.Cart)
	})
	router.DELETE("/cart/:userId/:productId", func(c *gin.Context) {
		handlers.DeleteCartItemHandler(c, svc.Cart)
	})

	// admin
	router.POST("/admin/login", func(c *gin.Context) {
		handlers.AdminLoginHandler(c, svc.Admin)
	})
	router.GET("/admin", func(c *gin.Context) {
		handlers.GetAdminListHandler(c, svc.Admin)
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}
