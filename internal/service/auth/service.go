package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autorabit/mealcoupon-backend-go/internal/domain/auth"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/profile"
	"github.com/autorabit/mealcoupon-backend-go/internal/domain/user"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/database"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/jwt"
	"github.com/autorabit/mealcoupon-backend-go/internal/pkg/oauth"
	"github.com/autorabit/mealcoupon-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	profile.ProfileRepository
	jwt.Service
	postgresql.JWTRepository
	roleResolver  user.RoleResolver
	googleService oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	profileRepository profile.ProfileRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	roleResolver user.RoleResolver,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		ProfileRepository: profileRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
		roleResolver:      roleResolver,
		googleService:     googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := a.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrEmailExists
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		created, err = a.UserRepository.Create(txCtx, user.User{Email: email, PasswordHash: &hashed})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, created, sessionReq)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, sessionReq)
}

// LoginWithGoogle implements auth.AuthService. The Google account email must
// be verified; an existing local account with the same email gets the Google
// identity linked instead of duplicated.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrOAuthEmailUnverified
	}

	email := strings.ToLower(info.Email)
	provider := "google"

	var userData user.User
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		exists, err := a.UserRepository.ExistsByEmail(txCtx, email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}

		if exists {
			userData, err = a.UserRepository.LinkGoogleAccount(txCtx, info.GoogleID, email)
			if err != nil {
				return fmt.Errorf("failed to link google account: %w", err)
			}
			return nil
		}

		userData, err = a.UserRepository.Create(txCtx, user.User{
			Email:           email,
			OAuthProvider:   &provider,
			OAuthProviderID: &info.GoogleID,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, userData, sessionReq)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	claims, err := a.parseRefreshClaims(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	revoked, err := a.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, _ := claims["user_id"].(string)
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		if err := a.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := a.parseRefreshClaims(refreshToken); err != nil {
		return err
	}
	if err := a.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// issueTokens resolves the caller's role and profile, mints the token pair
// and persists the refresh side.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	role, err := a.roleResolver.Resolve(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to resolve role: %w", err)
	}

	var employeeNumber *string
	p, err := a.ProfileRepository.GetByUserID(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if p != nil && p.EmployeeNumber != "" {
		employeeNumber = &p.EmployeeNumber
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.Role = string(role)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, employeeNumber, role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionReq); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return tokenResponse, nil
}

// parseRefreshClaims validates the signature and type of a refresh token.
func (a *AuthServiceImpl) parseRefreshClaims(refreshToken string) (map[string]interface{}, error) {
	if refreshToken == "" {
		return nil, auth.ErrInvalidToken
	}

	token, err := jwtauth.VerifyToken(a.Service.JWTAuth(), refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return nil, auth.ErrTokenExpired
		}
		return nil, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	if t, _ := claims["type"].(string); t != "refresh" {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}
