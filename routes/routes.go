package routes

import (
	"github.com/X-Vneer/e-commerc-api/controllers"
	"github.com/X-Vneer/e-commerc-api/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every HTTP handler set the API exposes.
type Controllers struct {
	Auth          *controllers.AuthController
	Cart          *controllers.CartController
	Products      *controllers.ProductController
	Lists         *controllers.ListController
	Categories    *controllers.CategoryController
	Branches      *controllers.BranchController
	AdminProducts *controllers.AdminProductController
	Upload        *controllers.UploadController
}

// Guards are the authentication middlewares.
type Guards struct {
	User     gin.HandlerFunc
	Optional gin.HandlerFunc
	Admin    gin.HandlerFunc
}

// NewGuards builds the guards from the token validator and admin lookup.
func NewGuards(tokens middleware.TokenValidator, admins middleware.AdminLookup) Guards {
	return Guards{
		User:     middleware.Auth(tokens),
		Optional: middleware.OptionalAuth(tokens),
		Admin:    middleware.AdminAuth(tokens, admins),
	}
}

// RegisterAPIRoutes mounts everything under /api/v1.
func RegisterAPIRoutes(r *gin.Engine, c Controllers, g Guards) {
	api := r.Group("/api/v1")

	registerAuthRoutes(api, c.Auth, g)
	registerProductRoutes(api, c.Products, g)
	registerCartRoutes(api, c.Cart, g)
	registerListRoutes(api, c.Lists)
	registerDashboardRoutes(api, c, g)
}

func registerAuthRoutes(api *gin.RouterGroup, ac *controllers.AuthController, g Guards) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.GET("/me", g.User, ac.Me)
		auth.PUT("/address", g.User, ac.UpdateAddress)
		auth.PUT("/info", g.User, ac.UpdateInfo)
	}
}

func registerProductRoutes(api *gin.RouterGroup, pc *controllers.ProductController, g Guards) {
	products := api.Group("/products", g.Optional)
	{
		products.GET("", pc.ListProducts)
		products.GET("/recent", pc.RecentProducts)
		products.GET("/favorites", g.User, pc.ListFavorites)
		products.GET("/:id", pc.GetProduct)
		products.POST("/:id/favorite", g.User, pc.SetFavorite)
	}
}

func registerCartRoutes(api *gin.RouterGroup, cc *controllers.CartController, g Guards) {
	cart := api.Group("/cart", g.User)
	{
		cart.GET("", cc.GetCart)
		cart.POST("/add", cc.AddToCart)
		cart.PUT("/:id", cc.UpdateItem)
		cart.DELETE("/:id", cc.RemoveItem)
	}
}

func registerListRoutes(api *gin.RouterGroup, lc *controllers.ListController) {
	lists := api.Group("/lists")
	{
		lists.GET("/emirates", lc.Emirates)
		lists.GET("/regions", lc.Regions)
		lists.GET("/sizes", lc.Sizes)
		lists.GET("/categories", lc.Categories)
	}
}

func registerDashboardRoutes(api *gin.RouterGroup, c Controllers, g Guards) {
	dashboard := api.Group("/dashboard")
	dashboard.POST("/auth/login", c.Auth.AdminLogin)

	admin := dashboard.Group("", g.Admin)
	admin.GET("/auth/me", c.Auth.AdminMe)

	categories := admin.Group("/categories")
	{
		categories.GET("", c.Categories.List)
		categories.POST("", c.Categories.Create)
		categories.PUT("/:id", c.Categories.Update)
		categories.DELETE("/:id", c.Categories.Delete)
	}

	branches := admin.Group("/branches")
	{
		branches.GET("", c.Branches.List)
		branches.POST("", c.Branches.Create)
		branches.PUT("/:id", c.Branches.Update)
		branches.DELETE("/:id", c.Branches.Delete)
	}

	products := admin.Group("/products")
	{
		products.GET("", c.AdminProducts.List)
		products.GET("/:id", c.AdminProducts.Get)
		products.POST("", c.AdminProducts.Create)
		products.PUT("/:id", c.AdminProducts.Update)
		products.PATCH("/:id/activity", c.AdminProducts.SetActivity)
	}

	admin.POST("/upload", c.Upload.Upload)
	admin.POST("/upload/presign", c.Upload.Presign)
}
