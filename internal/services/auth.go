package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/seabloom/tidewed-backend/internal/apierr"
	"github.com/seabloom/tidewed-backend/internal/logger"
	"github.com/seabloom/tidewed-backend/internal/normalization"
	"github.com/seabloom/tidewed-backend/internal/repos"
	"github.com/seabloom/tidewed-backend/internal/requestdata"
	"github.com/seabloom/tidewed-backend/internal/types"
	"github.com/seabloom/tidewed-backend/internal/utils"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatarService AvatarService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatarService AvatarService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(ctx, user)
	if vErr := utils.InputValidation(ctx, "registration", as.userRepo, as.log, user, "", ""); vErr != nil {
		return apierr.InvalidInput("%s", vErr.Error())
	}
	if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
		return hErr
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if as.avatarService != nil {
			if err := as.avatarService.CreateAndUploadUserAvatar(ctx, tx, user); err != nil {
				as.log.Warn("Failed to generate avatar on signup (continuing)", "error", err)
			}
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = normalization.ParseInputString(email)

	if vErr := utils.InputValidation(ctx, "login", as.userRepo, as.log, nil, email, password); vErr != nil {
		return "", "", apierr.InvalidInput("%s", vErr.Error())
	}

	users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if usErr != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", apierr.Unauthorized("invalid email or password")
	}

	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", apierr.Unauthorized("invalid email or password")
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("failed to check user tokens: %w", ftErr)
		}
		// Drop stale sessions before issuing a new one.
		expiredIDs := make([]uuid.UUID, 0, len(foundTokens))
		for _, t := range foundTokens {
			if t.ExpiresAt.Before(time.Now()) {
				expiredIDs = append(expiredIDs, t.ID)
			}
		}
		if len(expiredIDs) > 0 {
			if dtErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, expiredIDs); dtErr != nil {
				return fmt.Errorf("failed to delete expired user tokens: %w", dtErr)
			}
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			as.log.Warn("Create user token error", "error", ctErr)
			return fmt.Errorf("create user token: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return "", "", apierr.Unauthorized("no request data found in context")
	}
	if rd.RefreshToken == "" {
		return "", "", apierr.Unauthorized("refresh token not found in request data")
	}

	var accessToken string
	var newRefreshTokenStr string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
		if ftErr != nil {
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return apierr.Unauthorized("unknown refresh token")
		}
		existingToken := foundTokens[0]
		if existingToken.ExpiresAt.Before(time.Now()) {
			if dtErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", dtErr)
			}
			return apierr.Unauthorized("refresh token expired")
		}
		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return apierr.Unauthorized("no user found for the given refresh token")
		}
		user := users[0]
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshTokenStr = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  tok,
			RefreshToken: newRefreshTokenStr,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			return fmt.Errorf("failed to create new user token: %w", cErr)
		}
		if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshTokenStr, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthorized("no request data found in context")
	}
	if rd.TokenString == "" {
		return apierr.Unauthorized("token string in request data empty")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("error finding user token from token string: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if tdErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); tdErr != nil {
			return fmt.Errorf("error deleting user token: %w", tdErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.Unauthorized("failed to parse token: %v", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, apierr.Unauthorized("invalid or expired JWT token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized("invalid user id in token: %v", err)
	}
	var refreshTokenStr string
	foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		return ctx, fmt.Errorf("failed to fetch user token by access token: %w", ftErr)
	}
	if len(foundTokens) > 0 {
		refreshTokenStr = foundTokens[0].RefreshToken
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshTokenStr,
		UserID:       userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
