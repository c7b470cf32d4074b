package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/requestdata"
	"github.com/edutest/edutest-backend/internal/types"
	"github.com/edutest/edutest-backend/internal/utils"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
	LevelID  *uint  `json:"levelId"`
	GradeID  *uint  `json:"gradeId"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	Login(ctx context.Context, username, password string) (*types.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uint) error
	ParseAccessToken(tokenString string) (*requestdata.RequestData, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	unitRepo      repos.UnitRepo
	subUnitRepo   repos.SubUnitRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	unitRepo repos.UnitRepo,
	subUnitRepo repos.SubUnitRepo,
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
		unitRepo:      unitRepo,
		subUnitRepo:   subUnitRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Register creates a student account. When a grade is chosen the account is
// pointed at the grade's first unit and that unit's first sub-unit, so the
// solving screen has a starting position before the student picks anything.
func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	taken, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("username already exists")
	}
	taken, err = as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("email already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = username
	}

	user := &types.User{
		Username:         username,
		Email:            email,
		Password:         hashed,
		FullName:         fullName,
		Role:             types.RoleStudent,
		LevelID:          input.LevelID,
		GradeID:          input.GradeID,
		ProficiencyLevel: types.DifficultyMedium,
		Active:           true,
	}

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.GradeID != nil {
			unit, err := as.unitRepo.GetFirstByGradeID(ctx, tx, *input.GradeID)
			if err != nil {
				return fmt.Errorf("failed to resolve default unit: %w", err)
			}
			if unit != nil {
				user.UnitID = &unit.ID
				subUnit, err := as.subUnitRepo.GetFirstByUnitID(ctx, tx, unit.ID)
				if err != nil {
					return fmt.Errorf("failed to resolve default sub-unit: %w", err)
				}
				if subUnit != nil {
					user.SubUnitID = &subUnit.ID
				}
			}
		}
		if _, err := as.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	as.log.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, *TokenPair, error) {
	user, err := as.userRepo.GetByUsername(ctx, nil, strings.TrimSpace(username))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid username or password")
	}
	if !user.Active {
		return nil, nil, fmt.Errorf("account is disabled")
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, nil, fmt.Errorf("invalid username or password")
	}

	pair, err := as.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the refresh token: the presented token is consumed and a
// new pair is issued.
func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = as.userTokenRepo.DeleteByID(ctx, nil, stored.ID)
		return nil, fmt.Errorf("refresh token expired")
	}

	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByID(ctx, tx, stored.ID); err != nil {
			return fmt.Errorf("failed to rotate refresh token: %w", err)
		}
		p, err := as.issueTokensTx(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context, userID uint) error {
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

func (as *authService) issueTokens(ctx context.Context, user *types.User) (*TokenPair, error) {
	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := as.issueTokensTx(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) issueTokensTx(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// ParseAccessToken validates a bearer token and extracts the request identity.
func (as *authService) ParseAccessToken(tokenString string) (*requestdata.RequestData, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("invalid token subject")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &requestdata.RequestData{
		UserID:   uint(userID),
		Username: username,
		Role:     role,
	}, nil
}
