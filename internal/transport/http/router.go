package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/yurtapp/account-api/internal/application/address"
	"github.com/yurtapp/account-api/internal/application/auth"
	"github.com/yurtapp/account-api/internal/application/card"
	"github.com/yurtapp/account-api/internal/application/device"
	"github.com/yurtapp/account-api/internal/application/session"
	"github.com/yurtapp/account-api/internal/application/user"
	"github.com/yurtapp/account-api/internal/application/verification"
	"github.com/yurtapp/account-api/internal/config"
	"github.com/yurtapp/account-api/internal/metrics"
	"github.com/yurtapp/account-api/internal/transport/http/handler"
	appmiddleware "github.com/yurtapp/account-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(deps.Store, verification.Options{
		ActivationCodeTTL:  cfg.ActivationCodeTTL,
		RecoveryCodeTTL:    cfg.RecoveryCodeTTL,
		ResendCooldown:     cfg.ResendCooldown,
		ResetCapabilityTTL: cfg.ResetCapabilityTTL,
	})
	deviceSvc := device.NewService(deps.DeviceRepo)
	sessionSvc := session.NewService(deps.UserRepo, deviceSvc, deps.JWTProvider)
	userSvc := user.NewService(deps.UserRepo, verificationSvc, deps.Mailer, deps.S3Store)
	authSvc := auth.NewService(deps.UserRepo, verificationSvc, deps.Mailer, deps.SMSSender, sessionSvc)
	cardSvc := card.NewService(deps.CardRepo)
	addressSvc := address.NewService(deps.AddressRepo)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	sessionH := handler.NewSessionHandler(sessionSvc, deps.GeoIP, deps.Metrics)
	activationH := handler.NewActivationHandler(authSvc, deps.GeoIP, deps.Metrics)
	pwH := handler.NewPasswordRecoveryHandler(authSvc, deps.Metrics)
	deviceH := handler.NewDeviceHandler(deviceSvc)
	cardH := handler.NewCardHandler(cardSvc)
	addressH := handler.NewAddressHandler(addressSvc)

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/activation/send", activationH.SendCode)
		r.With(sensitiveRL.Limit).Post("/activation/verify", activationH.Verify)
		r.With(sensitiveRL.Limit).Post("/password-recovery/send", pwH.SendCode)
		r.With(sensitiveRL.Limit).Post("/password-recovery/verify", pwH.VerifyCode)
		r.With(sensitiveRL.Limit).Post("/password-recovery/reset", pwH.Reset)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users/me", userH.GetMe)
			r.Put("/users/me", userH.UpdateMe)
			r.Delete("/users/me", userH.DeleteMe)
			r.Post("/users/me/change-password", userH.ChangePassword)
			r.Patch("/users/me/notification-settings", userH.UpdateNotificationSettings)
			r.Post("/users/me/photo", userH.UploadPhoto)

			r.Get("/devices", deviceH.List)
			r.Delete("/devices/{id}", deviceH.Delete)

			r.Post("/cards", cardH.Create)
			r.Get("/cards", cardH.List)
			r.Get("/cards/{id}", cardH.Get)
			r.Put("/cards/{id}", cardH.Update)
			r.Delete("/cards/{id}", cardH.Delete)

			r.Post("/addresses", addressH.Create)
			r.Get("/addresses", addressH.List)
			r.Get("/addresses/{id}", addressH.Get)
			r.Put("/addresses/{id}", addressH.Update)
			r.Delete("/addresses/{id}", addressH.Delete)
		})
	})

	return r
}
