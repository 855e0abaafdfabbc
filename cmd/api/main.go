package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/autorabit/mealcoupon-backend-go/internal/config"
	appHTTP "github.com/autorabit/mealcoupon-backend-go/internal/handler/http"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/clock"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/jwt"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/oauth"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/qrtoken"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/storage"
	"github.com/autorabit/mealcoupon-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/autorabit/mealcoupon-backend-go/internal/service/auth"
	"github.com/autorabit/mealcoupon-backend-go/internal/service/file"
	profileService "github.com/autorabit/mealcoupon-backend-go/internal/service/profile"
	redemptionService "github.com/autorabit/mealcoupon-backend-go/internal/service/redemption"
	reportService "github.com/autorabit/mealcoupon-backend-go/internal/service/report"
	roleService "github.com/autorabit/mealcoupon-backend-go/internal/service/role"
	settingsService "github.com/autorabit/mealcoupon-backend-go/internal/service/settings"

	"log/slog"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	roleAssignmentRepo := postgresql.NewRoleAssignmentRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	redemptionRepo := postgresql.NewRedemptionRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	couponCodec := qrtoken.NewCodec(cfg.Coupon.SigningSecret, cfg.Coupon.Issuer, cfg.Coupon.TTL)
	serverClock := clock.NewSystemClock(cfg.App.Timezone)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	roleResolver := roleService.NewResolver(userRepo, profileRepo, roleAssignmentRepo, cfg.Org.InternalDomain)
	authSvc := serviceAuth.NewAuthService(db, userRepo, profileRepo, JWTService, JWTRepository, roleResolver, GoogleService)
	profileSvc := profileService.NewProfileService(db, profileRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, fileSvc)
	redemptionSvc := redemptionService.NewRedemptionService(redemptionRepo, settingsSvc, couponCodec, serverClock, logger)
	reportSvc := reportService.NewReportService(redemptionRepo, settingsSvc, serverClock)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)
	redemptionHandler := appHTTP.NewRedemptionHandler(redemptionSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		profileHandler,
		redemptionHandler,
		reportHandler,
		settingsHandler,
		cfg.App.Env,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
