package routes

import (
	"ClinicCare/cache"
	"ClinicCare/config"
	"ClinicCare/controllers"
	"ClinicCare/handlers"
	"ClinicCare/middlewares"
	"ClinicCare/repositories"
	"ClinicCare/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server.
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.cliniccare.example"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories
	userRepo := repositories.NewUserRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	availabilityRepo := repositories.NewAvailabilityRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository()
	treatmentRepo := repositories.NewTreatmentRepository()

	// Services
	userService := services.NewUserService(userRepo)
	doctorService := services.NewDoctorService(doctorRepo, userRepo)
	patientService := services.NewPatientService(patientRepo, userRepo)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	bookingService := services.NewBookingService(availabilityRepo, appointmentRepo)
	treatmentService := services.NewTreatmentService(treatmentRepo, appointmentRepo)
	adminService := services.NewAdminService(doctorRepo, patientRepo, appointmentRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, adminService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, doctorService)
	bookingHandler := handlers.NewBookingHandler(bookingService, patientService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService, doctorService)
	treatmentHandler := handlers.NewTreatmentHandler(treatmentService, doctorService, patientService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		patientHandler,
		doctorHandler,
		availabilityHandler,
		bookingHandler,
		appointmentHandler,
		treatmentHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
