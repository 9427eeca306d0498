package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/blomoto/blomoto-server/internal/handlers"
	"github.com/blomoto/blomoto-server/internal/service/token"
)

type Deps struct {
	DB                 *gorm.DB
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	ServiceHandler     *handlers.ServiceHandler
	CategoryHandler    *handlers.CategoryHandler
	GarageHandler      *handlers.GarageHandler
	ReviewHandler      *handlers.ReviewHandler
	AppointmentHandler *handlers.AppointmentHandler
	FavoriteHandler    *handlers.FavoriteHandler
	SearchHandler      *handlers.SearchHandler
	Tokens             *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.POST("/token/refresh", d.AuthHandler.Refresh)
	v1.GET("/me", d.AuthHandler.Me, d.Tokens.RequireAuth)

	users := v1.Group("/users")
	users.GET("", d.UserHandler.ListUsers)
	users.POST("/create", d.UserHandler.CreateUser)
	users.GET("/:id", d.UserHandler.GetUser)
	users.PUT("/:id/update", d.UserHandler.UpdateUser)
	users.PATCH("/:id/update", d.UserHandler.UpdateUser)
	users.DELETE("/:id/delete", d.UserHandler.DeleteUser)

	services := v1.Group("/services")
	services.GET("", d.ServiceHandler.ListServices)
	services.POST("/create", d.ServiceHandler.CreateService)
	services.GET("/:id", d.ServiceHandler.GetService)
	services.PUT("/:id/update", d.ServiceHandler.UpdateService)
	services.PATCH("/:id/update", d.ServiceHandler.UpdateService)
	services.DELETE("/:id/delete", d.ServiceHandler.DeleteService)

	categories := v1.Group("/categories")
	categories.GET("", d.CategoryHandler.ListCategories)
	categories.POST("/create", d.CategoryHandler.CreateCategory)
	categories.GET("/:id", d.CategoryHandler.GetCategory)
	categories.PUT("/:id/update", d.CategoryHandler.UpdateCategory)
	categories.PATCH("/:id/update", d.CategoryHandler.UpdateCategory)
	categories.DELETE("/:id/delete", d.CategoryHandler.DeleteCategory)

	garages := v1.Group("/garages")
	garages.GET("", d.GarageHandler.ListGarages)
	garages.GET("/search", d.SearchHandler.SearchGarages)
	garages.POST("/create", d.GarageHandler.CreateGarage)
	garages.GET("/:id", d.GarageHandler.GetGarage)
	garages.PUT("/:id/update", d.GarageHandler.UpdateGarage)
	garages.PATCH("/:id/update", d.GarageHandler.UpdateGarage)
	garages.DELETE("/:id/delete", d.GarageHandler.DeleteGarage)

	reviews := v1.Group("/reviews")
	reviews.GET("", d.ReviewHandler.ListReviews)
	reviews.POST("/create", d.ReviewHandler.CreateReview)
	reviews.GET("/:id", d.ReviewHandler.GetReview)
	reviews.PUT("/:id/update", d.ReviewHandler.UpdateReview)
	reviews.PATCH("/:id/update", d.ReviewHandler.UpdateReview)
	reviews.DELETE("/:id/delete", d.ReviewHandler.DeleteReview)

	appointments := v1.Group("/appointments")
	appointments.GET("", d.AppointmentHandler.ListAppointments)
	appointments.POST("/create", d.AppointmentHandler.CreateAppointment)
	appointments.GET("/:id", d.AppointmentHandler.GetAppointment)
	appointments.PUT("/:id/update", d.AppointmentHandler.UpdateAppointment)
	appointments.PATCH("/:id/update", d.AppointmentHandler.UpdateAppointment)
	appointments.DELETE("/:id/delete", d.AppointmentHandler.DeleteAppointment)

	favorites := v1.Group("/favorites", d.Tokens.RequireAuth)
	favorites.GET("", d.FavoriteHandler.ListFavorites)
	favorites.POST("/create", d.FavoriteHandler.CreateFavorite)
	favorites.DELETE("/:id/delete", d.FavoriteHandler.DeleteFavorite)
}
