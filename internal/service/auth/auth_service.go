package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"socialmall/internal/model"
	"socialmall/internal/monitor"
	"socialmall/internal/repository"
	"socialmall/internal/utils"
	"socialmall/pkg/log"
	pkgutils "socialmall/pkg/utils"
)

// RegisterRequest register request
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// LoginRequest login request
type LoginRequest struct {
	Account  string `json:"account" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

// TokenResponse token response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// AuthService authentication service interface
type AuthService interface {
	// Register user
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)

	// Login user
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)

	// Logout user
	Logout(ctx context.Context, userID uint64, token string) error

	// Validate token
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
}

// authService authentication service implementation
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	redis      *redis.Client
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	redis *redis.Client,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		redis:      redis,
	}
}

// Register registers a user
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		log.WithError(err).Error("check username failed")
		return nil, pkgutils.ErrDatabaseError
	}
	if exists {
		monitor.RecordUserRegistration("duplicate")
		return nil, pkgutils.NewError(pkgutils.CodeInvalidParam, "username already exists")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.WithError(err).Error("check email failed")
		return nil, pkgutils.ErrDatabaseError
	}
	if exists {
		monitor.RecordUserRegistration("duplicate")
		return nil, pkgutils.NewError(pkgutils.CodeInvalidParam, "email already registered")
	}

	salt, err := generateSalt()
	if err != nil {
		log.WithError(err).Error("generate salt failed")
		return nil, pkgutils.ErrInternalError
	}

	passwordHash, err := hashPassword(req.Password + salt)
	if err != nil {
		log.WithError(err).Error("hash password failed")
		return nil, pkgutils.ErrInternalError
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         model.RoleUser,
		Status:       model.UserStatusNormal,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.WithError(err).Error("create user failed")
		monitor.RecordUserRegistration("failed")
		return nil, pkgutils.ErrDatabaseError
	}

	log.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")
	monitor.RecordUserRegistration("success")

	return user, nil
}

// Login logs in a user by username or email
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.findUserByAccount(ctx, req.Account)
	if err != nil {
		monitor.RecordUserLogin("failed")
		return nil, pkgutils.NewError(pkgutils.CodeUnauthorized, "username or password incorrect")
	}

	if !user.IsActive() {
		monitor.RecordUserLogin("disabled")
		return nil, pkgutils.NewError(pkgutils.CodeForbidden, "account disabled")
	}

	if err := s.checkLoginAttempts(ctx, user.ID); err != nil {
		monitor.RecordUserLogin("throttled")
		return nil, err
	}

	if !verifyPassword(req.Password+user.Salt, user.PasswordHash) {
		s.recordLoginFailure(ctx, user.ID)
		monitor.RecordUserLogin("failed")
		return nil, pkgutils.NewError(pkgutils.CodeUnauthorized, "username or password incorrect")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.WithError(err).Error("generate access token failed")
		return nil, pkgutils.ErrInternalError
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		log.WithError(err).Error("generate refresh token failed")
		return nil, pkgutils.ErrInternalError
	}

	tokenKey := fmt.Sprintf("auth:token:%d", user.ID)
	s.redis.Set(ctx, tokenKey, accessToken, s.jwtManager.AccessExpire())

	s.userRepo.UpdateLastLogin(ctx, user.ID)
	s.clearLoginFailures(ctx, user.ID)

	log.WithFields(map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User logged in")
	monitor.RecordUserLogin("success")

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessExpire() / time.Second),
		TokenType:    "Bearer",
	}, nil
}

// Logout logs out a user; the token stays blacklisted until it would
// have expired anyway
func (s *authService) Logout(ctx context.Context, userID uint64, token string) error {
	tokenKey := fmt.Sprintf("auth:token:%d", userID)
	s.redis.Del(ctx, tokenKey)

	blacklistKey := fmt.Sprintf("auth:blacklist:%s", token)
	s.redis.Set(ctx, blacklistKey, "1", s.jwtManager.AccessExpire())

	log.WithField("user_id", userID).Info("User logged out")
	return nil
}

// ValidateToken validates a token against the signature, the blacklist
// and the stored session
func (s *authService) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	blacklistKey := fmt.Sprintf("auth:blacklist:%s", token)
	exists, _ := s.redis.Exists(ctx, blacklistKey).Result()
	if exists > 0 {
		return nil, pkgutils.ErrUnauthorized
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, pkgutils.ErrUnauthorized
	}

	tokenKey := fmt.Sprintf("auth:token:%d", claims.UserID)
	storedToken, err := s.redis.Get(ctx, tokenKey).Result()
	if err != nil || storedToken != token {
		return nil, pkgutils.ErrUnauthorized
	}

	return claims, nil
}

// RefreshToken issues a new access token from a refresh token
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, pkgutils.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgutils.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, pkgutils.ErrInternalError
	}

	tokenKey := fmt.Sprintf("auth:token:%d", user.ID)
	s.redis.Set(ctx, tokenKey, accessToken, s.jwtManager.AccessExpire())

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessExpire() / time.Second),
		TokenType:    "Bearer",
	}, nil
}

// findUserByAccount finds a user by username or email
func (s *authService) findUserByAccount(ctx context.Context, account string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, account)
	if err == nil {
		return user, nil
	}
	return s.userRepo.GetByEmail(ctx, account)
}

// checkLoginAttempts rejects logins after repeated failures
func (s *authService) checkLoginAttempts(ctx context.Context, userID uint64) error {
	key := fmt.Sprintf("auth:login_attempts:%d", userID)
	attempts, _ := s.redis.Get(ctx, key).Int()

	if attempts >= 5 {
		return pkgutils.NewError(pkgutils.CodeForbidden,
			"login failed too many times, please try again in 30 minutes")
	}
	return nil
}

// recordLoginFailure records a login failure
func (s *authService) recordLoginFailure(ctx context.Context, userID uint64) {
	key := fmt.Sprintf("auth:login_attempts:%d", userID)
	s.redis.Incr(ctx, key)
	s.redis.Expire(ctx, key, 30*time.Minute)
}

// clearLoginFailures clears login failures
func (s *authService) clearLoginFailures(ctx context.Context, userID uint64) {
	key := fmt.Sprintf("auth:login_attempts:%d", userID)
	s.redis.Del(ctx, key)
}

func generateSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
