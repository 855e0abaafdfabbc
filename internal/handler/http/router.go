package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/autorabit/mealcoupon-backend-go/internal/handler/http/middleware"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	redemptionHandler RedemptionHandler,
	reportHandler ReportHandler,
	settingsHandler SettingsHandler,
	appEnv string,
	uploadsBasePath string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "mealcoupon-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Uploaded assets (company logo) served directly.
	fileServer(r, "/uploads", http.Dir(uploadsBasePath))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/profile", func(r chi.Router) {
				r.Route("/my", func(r chi.Router) {
					r.Get("/", profileHandler.GetMy)
					r.Put("/", profileHandler.SaveMy)
				})
			})

			r.Route("/redemptions", func(r chi.Router) {
				r.Post("/kiosk", redemptionHandler.RedeemAtKiosk)
				r.Post("/scan", redemptionHandler.RedeemStationScan)
				r.Route("/my", func(r chi.Router) {
					r.Get("/", redemptionHandler.History)
					r.Get("/code", redemptionHandler.MyCode)
					r.Get("/coupon", redemptionHandler.MyCoupon)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireAdminAccess)
				r.Get("/range", reportHandler.Range)
				r.Get("/range/csv", reportHandler.RangeCSV)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)

				// Full admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireFullAdmin)
					r.Put("/", settingsHandler.Update)
					r.Post("/logo", settingsHandler.UploadLogo)
				})
			})
		})
	})
	return r
}

func fileServer(r chi.Router, path string, root http.FileSystem) {
	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	r.Get(path+"*", func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
