package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"printlab/internal/auth"
	apperrors "printlab/internal/errors"
	"printlab/internal/mailer"
	"printlab/internal/model"
	"printlab/internal/repository"
)

const bcryptCost = 10

// AuthService orchestrates registration, login, OTP verification, token
// refresh and password recovery.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName, phone string) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	ParseRefreshSubject(refreshToken string) (uint, error)
	RefreshTokens(ctx context.Context, userID uint, refreshToken string) (newAccess, newRefresh string, err error)
	Logout(ctx context.Context, userID uint) error
	SendOTP(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (*model.User, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Profile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, fullName, phone string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	mailer     mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, mailer mailer.Mailer) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// Register creates a new inactive USER account. The role and activation state
// are forced regardless of caller input; duplicate emails are rejected.
func (s *authService) Register(ctx context.Context, email, password, fullName, phone string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Email:    email,
		Password: password, // hashed by the model's BeforeSave hook
		FullName: fullName,
		Phone:    phone,
		Role:     model.RoleUser,
		IsActive: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent registrations can slip past the FindByEmail check and
		// land on the unique email index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a fresh token pair. The stored
// refresh hash is replaced, invalidating any previously issued refresh token.
// Unknown email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", nil, apperrors.ErrAccountInactive
	}

	if !user.CheckPassword(password) {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

// ParseRefreshSubject decodes a refresh token without verifying it and
// returns the candidate subject id. The result must not be trusted until
// RefreshTokens succeeds for the same token.
func (s *authService) ParseRefreshSubject(refreshToken string) (uint, error) {
	claims, err := s.jwtService.ParseUnverified(refreshToken)
	if err != nil {
		return 0, apperrors.ErrInvalidRefreshToken
	}
	return claims.UserID, nil
}

// RefreshTokens rotates the token pair. The presented token must hash to the
// single stored value, carry a valid signature for the claimed subject, and
// belong to an active user. The old refresh token is invalid afterwards.
func (s *authService) RefreshTokens(ctx context.Context, userID uint, refreshToken string) (string, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", "", apperrors.ErrInvalidRefreshToken
	}

	if user.HashedRefreshToken == nil {
		return "", "", apperrors.ErrInvalidRefreshToken
	}
	if auth.HashToken(refreshToken) != *user.HashedRefreshToken {
		return "", "", apperrors.ErrInvalidRefreshToken
	}

	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.UserID != user.ID {
		return "", "", apperrors.ErrInvalidRefreshToken
	}

	if !user.IsActive {
		return "", "", apperrors.ErrAccountInactive
	}

	return s.issueTokenPair(ctx, user)
}

// Logout clears the stored refresh hash unconditionally. Calling it for a
// user with no active session is not an error.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	return s.userRepo.UpdateRefreshHash(ctx, userID, nil)
}

// SendOTP issues a fresh verification code, superseding any pending one.
// Unknown emails are reported; a mail transport failure surfaces as an
// internal error because the caller cannot proceed without the code.
func (s *authService) SendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.dispatchOTP(ctx, user)
}

// ForgotPassword issues a verification code like SendOTP but never discloses
// whether the email exists: lookup misses and mail failures are swallowed and
// the caller always sees the same generic outcome.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	if err := s.dispatchOTP(ctx, user); err != nil {
		log.Printf("forgot-password: otp dispatch for user %d: %v", user.ID, err)
	}
	return nil
}

// VerifyOTP checks a submitted code against the pending challenge and
// activates the account on success, consuming the code.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := checkOTP(user, code); err != nil {
		return nil, err
	}

	user.IsActive = true
	user.OtpCode = nil
	user.OtpExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("activate user: %w", err)
	}

	return user, nil
}

// ResetPassword verifies the pending code with the same rules as VerifyOTP,
// then stores the new password. Hashing happens in the store's write path,
// never here.
func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := checkOTP(user, code); err != nil {
		return err
	}

	user.Password = newPassword
	user.IsActive = true
	user.OtpCode = nil
	user.OtpExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	return nil
}

// Profile returns the user for the authenticated subject.
func (s *authService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, fullName, phone string) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if phone != "" {
		user.Phone = phone
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// issueTokenPair issues a token pair and persists the new refresh hash,
// replacing whatever hash was stored before.
func (s *authService) issueTokenPair(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	hash := auth.HashToken(refreshToken)
	if err := s.userRepo.UpdateRefreshHash(ctx, user.ID, &hash); err != nil {
		return "", "", fmt.Errorf("store refresh hash: %w", err)
	}

	return accessToken, refreshToken, nil
}

// dispatchOTP generates, stores and emails a code with a 5 minute window.
func (s *authService) dispatchOTP(ctx context.Context, user *model.User) error {
	code, err := auth.GenerateOTP()
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	expires := time.Now().Add(auth.OTPValidity)
	if err := s.userRepo.SetOTP(ctx, user.ID, string(hashed), expires); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMailDelivery, err)
	}
	return nil
}

// checkOTP validates the pending challenge on a loaded user.
func checkOTP(user *model.User, code string) error {
	if user.OtpCode == nil || user.OtpExpires == nil {
		return apperrors.ErrNoOtpPending
	}
	if time.Now().After(*user.OtpExpires) {
		return apperrors.ErrOtpExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.OtpCode), []byte(code)) != nil {
		return apperrors.ErrOtpMismatch
	}
	return nil
}
