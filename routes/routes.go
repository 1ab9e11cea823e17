package routes

import (
	"net/http"

	"chefotw/auth"
	"chefotw/config"
	"chefotw/filemgr"
	"chefotw/mailer"
	"chefotw/messages"
	"chefotw/middleware"
	"chefotw/profile"
	"chefotw/ratelim"
	"chefotw/reservations"
	"chefotw/reviews"
	"chefotw/services"
	"chefotw/stripe"

	"github.com/julienschmidt/httprouter"
)

// Wire registers every route. External clients (mail relay, payment
// gateway) are constructed once here and shared.
func Wire(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, cfg *config.Config) {
	m := mailer.New(cfg)
	payments := stripe.NewClient(cfg.StripeKey)

	AddAuthRoutes(router, rateLimiter, auth.NewAuthService(cfg, m))
	AddProfileRoutes(router)
	AddServiceRoutes(router, rateLimiter)
	AddReviewRoutes(router)
	AddReservationRoutes(router, reservations.NewReservationService(cfg, payments, m))
	AddMessageRoutes(router)
	AddStaticRoutes(router)
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, authService *auth.AuthService) {
	router.POST("/auth/signup", rateLimiter.Limit(authService.Register))
	router.POST("/auth/login", rateLimiter.Limit(authService.Login))
	router.GET("/auth/verify", middleware.Authenticate(authService.Verify))
	router.POST("/upload", rateLimiter.Limit(filemgr.UploadPicture))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/profile", middleware.Authenticate(profile.GetProfile))
	router.GET("/profile/:id", middleware.Authenticate(profile.GetUserProfile))
	router.PUT("/profile/:id", middleware.Authenticate(profile.UpdateProfile))
	router.GET("/myService", middleware.Authenticate(profile.MyServices))
	router.GET("/reservations", middleware.Authenticate(profile.MyReservations))
}

func AddServiceRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/services", rateLimiter.Limit(middleware.Authenticate(services.CreateService)))
	router.GET("/services", services.GetServices)
	router.GET("/services/:serviceId", services.GetService)
	router.PUT("/services/:serviceId", middleware.Authenticate(services.UpdateService))
	router.DELETE("/services/:serviceId", middleware.Authenticate(services.DeleteService))
}

func AddReviewRoutes(router *httprouter.Router) {
	router.POST("/reviews", middleware.Authenticate(reviews.AddReview))
	router.GET("/reviews", middleware.Authenticate(reviews.GetReviews))
	router.GET("/reviews/:reviewId", reviews.GetReview)
	router.PUT("/reviews/:reviewId", reviews.EditReview)
	router.DELETE("/reviews/:reviewId", reviews.DeleteReview)
}

func AddReservationRoutes(router *httprouter.Router, reservationService *reservations.ReservationService) {
	router.POST("/services/:serviceId/reserve", middleware.Authenticate(reservationService.Reserve))
	// "/reservations/all" is disambiguated inside GetReservation; httprouter
	// cannot hold a static segment next to :reservationId.
	router.GET("/reservations/:reservationId", middleware.Authenticate(reservationService.GetReservation))
	router.PUT("/reservations/:reservationId", middleware.Authenticate(reservationService.UpdateReservation))
	router.DELETE("/reservations/:reservationId", middleware.Authenticate(reservationService.DeleteReservation))
	router.POST("/create-checkout-session", reservationService.CreateCheckoutSession)
}

func AddMessageRoutes(router *httprouter.Router) {
	router.POST("/message/:recipientId", middleware.Authenticate(messages.SendMessage))
	router.GET("/message/:senderId", middleware.Authenticate(messages.GetMessages))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}
