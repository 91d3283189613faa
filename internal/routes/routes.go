package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/config"
	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/handlers"
	"github.com/BruksfildServices01/car-rental/internal/metrics"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
	"github.com/BruksfildServices01/car-rental/internal/usecase/account"
	ucBooking "github.com/BruksfildServices01/car-rental/internal/usecase/booking"
	ucCar "github.com/BruksfildServices01/car-rental/internal/usecase/car"
)

// Dependencies are the singletons built by cmd/api.
type Dependencies struct {
	Repo      rental.Repository
	Audit     *audit.Dispatcher
	AuditLogs audit.Reader
	Metrics   *metrics.Metrics
	Images    ucCar.ImageStore
	Cache     ucCar.SearchCache

	// CheckEmailDomain is nil unless VERIFY_EMAIL_DOMAIN is set.
	CheckEmailDomain account.DomainCheck
	// BcryptCost overrides bcrypt.DefaultCost when non-zero.
	BcryptCost int
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.HandleMethodNotAllowed = true

	r.Use(deps.Metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.Authenticate(cfg))

	// ======================================================
	// USE CASES
	// ======================================================
	accounts := account.NewService(deps.Repo, deps.Audit, deps.CheckEmailDomain)
	if deps.BcryptCost != 0 {
		accounts.WithCost(deps.BcryptCost)
	}

	getCarsUC := ucCar.NewGetCars(deps.Repo)
	searchCarsUC := ucCar.NewSearchCars(deps.Repo, deps.Cache, deps.Metrics)
	createCarUC := ucCar.NewCreateCar(deps.Repo, deps.Images, deps.Cache, deps.Audit)

	createBookingUC := ucBooking.NewCreateBooking(deps.Repo, deps.Audit, deps.Metrics)
	cancelBookingUC := ucBooking.NewCancelBooking(deps.Repo, deps.Audit, deps.Metrics)
	listBookingsUC := ucBooking.NewListBookings(deps.Repo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accounts, cfg)
	appWebHandler := handlers.NewAppWebHandler()
	carHandler := handlers.NewCarHandler(getCarsUC, searchCarsUC)
	bookingHandler := handlers.NewBookingHandler(getCarsUC, createBookingUC, cancelBookingUC, listBookingsUC)
	managerHandler := handlers.NewManagerHandler(createCarUC, listBookingsUC, cancelBookingUC)
	meHandler := handlers.NewMeHandler(accounts)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogs)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", deps.Metrics.Handler())

	if !cfg.UseS3() && cfg.MediaDir != "" {
		r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), cfg.MediaDir)
	}

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/", appWebHandler.Home)
	r.GET("/login/", appWebHandler.LoginPage)
	r.POST("/login/", authHandler.Login)
	r.POST("/register/", authHandler.Register)
	r.POST("/logout/", authHandler.Logout)

	r.GET("/api/search/", carHandler.Search)

	// ======================================================
	// LOGIN REQUIRED
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.RequireLogin(), middleware.RefreshPrincipal(deps.Repo))
	{
		secured.GET("/dashboard/", appWebHandler.Dashboard)
		secured.GET("/me/", meHandler.GetMe)
		secured.POST("/change_password/", authHandler.ChangePassword)

		secured.GET("/cars/", carHandler.List)
		secured.GET("/car/:car_id/", carHandler.Detail)

		secured.GET("/book/:car_id/", bookingHandler.BookForm)
		secured.POST("/book/:car_id/", bookingHandler.Book)
		secured.GET("/my_bookings/", bookingHandler.Mine)
		secured.GET("/cancel_booking/:booking_id/", bookingHandler.CancelForm)
		secured.POST("/cancel_booking/:booking_id/", bookingHandler.Cancel)

		// ------------------------------
		// MANAGER
		// ------------------------------
		manager := secured.Group("/manager")
		manager.Use(middleware.RequireRole(access.RoleManager))
		{
			manager.GET("/dashboard/", managerHandler.Dashboard)
			manager.GET("/add_car/", managerHandler.AddCarForm)
			manager.POST("/add_car/", managerHandler.AddCar)
			manager.GET("/bookings/", managerHandler.Bookings)
			manager.GET("/bookings/cancel/:booking_id/", managerHandler.CancelForm)
			manager.POST("/bookings/cancel/:booking_id/", managerHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(access.RoleAdmin))
		{
			admin.GET("/audit_logs/", auditLogsHandler.List)
		}
	}
}
