package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"printlab/internal/auth"
	"printlab/internal/config"
	"printlab/internal/handler"
	"printlab/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	productHandler *handler.ProductHandler,
	variantHandler *handler.VariantHandler,
	assetHandler *handler.AssetHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/send-otp", authHandler.SendOTP)
	api.POST("/auth/verify-otp", authHandler.VerifyOTP)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	// Public catalog reads
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/products/:id/variants", variantHandler.ListByProduct)
	api.GET("/products/:id/assets", assetHandler.ListByProduct)
	api.GET("/variants/:id", variantHandler.Get)
	api.GET("/assets/:id", assetHandler.Get)

	// Secured routes (bearer access token, typed claims)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/auth/profile", authHandler.Profile)
	secured.PATCH("/auth/profile", authHandler.UpdateProfile)

	// Cart routes, always scoped to the authenticated subject
	secured.GET("/cart", cartHandler.GetCart)
	secured.DELETE("/cart", cartHandler.ClearCart)
	secured.POST("/cart/items", cartHandler.AddItem)
	secured.PATCH("/cart/items/:id", cartHandler.UpdateItem)
	secured.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	secured.POST("/cart/checkout", cartHandler.Checkout)

	// Order routes
	secured.POST("/orders", orderHandler.Create)
	secured.GET("/orders/my", orderHandler.ListMine)
	secured.GET("/orders/:id", orderHandler.Get)

	// Staff routes
	staff := secured.Group("", RequireRole(model.RoleAdmin, model.RoleSuperAdmin))
	staff.GET("/orders", orderHandler.List)
	staff.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	staff.PATCH("/orders/:id/payment-status", orderHandler.UpdatePaymentStatus)
	staff.POST("/products", productHandler.Create)
	staff.PUT("/products/:id", productHandler.Update)
	staff.DELETE("/products/:id", productHandler.Delete)
	staff.POST("/variants", variantHandler.Create)
	staff.PUT("/variants/:id", variantHandler.Update)
	staff.DELETE("/variants/:id", variantHandler.Delete)
	staff.POST("/assets", assetHandler.Create)
	staff.PUT("/assets/:id", assetHandler.Update)
	staff.DELETE("/assets/:id", assetHandler.Delete)

	// Super-admin only
	super := secured.Group("", RequireRole(model.RoleSuperAdmin))
	super.DELETE("/orders/:id", orderHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
