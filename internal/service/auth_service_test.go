package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"printlab/internal/auth"
	apperrors "printlab/internal/errors"
	"printlab/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshHash(ctx context.Context, id uint, hash *string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) SetOTP(ctx context.Context, id uint, codeHash string, expires time.Time) error {
	args := m.Called(ctx, id, codeHash, expires)
	return args.Error(0)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(to, code string) error {
	args := m.Called(to, code)
	return args.Error(0)
}

func (m *MockMailer) SendOrderConfirmation(to string, orderID uint, total decimal.Decimal) error {
	args := m.Called(to, orderID, total)
	return args.Error(0)
}

func newAuthServiceForTest(repo *MockUserRepository, ml *MockMailer) AuthService {
	return NewAuthService(repo, auth.NewJWTService("test-secret"), ml)
}

func activeUser(id uint, email, password string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "new@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already taken",
			email: "existing@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "duplicate slipping past the pre-check",
			email: "racer@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racer@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthServiceForTest(mockRepo, new(MockMailer))
			user, err := service.Register(context.Background(), tt.email, "password123", "Test User", "+998901234567")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.False(t, user.IsActive)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "user@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").
					Return(activeUser(1, "user@example.com", "password123"), nil)
				m.On("UpdateRefreshHash", mock.Anything, uint(1), mock.AnythingOfType("*string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").
					Return(activeUser(1, "user@example.com", "password123"), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "inactive account",
			email:    "pending@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				user := activeUser(2, "pending@example.com", "password123")
				user.IsActive = false
				m.On("FindByEmail", mock.Anything, "pending@example.com").Return(user, nil)
			},
			expectedError: apperrors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthServiceForTest(mockRepo, new(MockMailer))
			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshTokens(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	user := activeUser(7, "user@example.com", "password123")
	issued, err := jwtService.GenerateRefreshToken(user.ID, user.Email)
	assert.NoError(t, err)
	storedHash := auth.HashToken(issued)
	user.HashedRefreshToken = &storedHash

	t.Run("rotation replaces the stored hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(user, nil)

		var newHash string
		mockRepo.On("UpdateRefreshHash", mock.Anything, uint(7), mock.AnythingOfType("*string")).
			Run(func(args mock.Arguments) {
				newHash = *args.Get(2).(*string)
			}).Return(nil)

		service := NewAuthService(mockRepo, jwtService, new(MockMailer))
		access, refresh, err := service.RefreshTokens(context.Background(), 7, issued)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, auth.HashToken(refresh), newHash)
		assert.NotEqual(t, storedHash, newHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("superseded token is rejected", func(t *testing.T) {
		rotated := activeUser(7, "user@example.com", "password123")
		otherHash := auth.HashToken("some-newer-token")
		rotated.HashedRefreshToken = &otherHash

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(rotated, nil)

		service := NewAuthService(mockRepo, jwtService, new(MockMailer))
		_, _, err := service.RefreshTokens(context.Background(), 7, issued)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("no session stored", func(t *testing.T) {
		bare := activeUser(7, "user@example.com", "password123")

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(bare, nil)

		service := NewAuthService(mockRepo, jwtService, new(MockMailer))
		_, _, err := service.RefreshTokens(context.Background(), 7, issued)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("signature from another key is rejected", func(t *testing.T) {
		foreign := auth.NewJWTService("other-secret")
		forged, err := foreign.GenerateRefreshToken(7, "user@example.com")
		assert.NoError(t, err)

		victim := activeUser(7, "user@example.com", "password123")
		forgedHash := auth.HashToken(forged)
		victim.HashedRefreshToken = &forgedHash

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(victim, nil)

		service := NewAuthService(mockRepo, jwtService, new(MockMailer))
		_, _, err = service.RefreshTokens(context.Background(), 7, forged)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		dormant := activeUser(7, "user@example.com", "password123")
		dormant.IsActive = false
		dormantHash := auth.HashToken(issued)
		dormant.HashedRefreshToken = &dormantHash

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(dormant, nil)

		service := NewAuthService(mockRepo, jwtService, new(MockMailer))
		_, _, err := service.RefreshTokens(context.Background(), 7, issued)

		assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
		mockRepo.AssertNotCalled(t, "UpdateRefreshHash", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdateRefreshHash", mock.Anything, uint(3), (*string)(nil)).Return(nil)

	service := newAuthServiceForTest(mockRepo, new(MockMailer))
	assert.NoError(t, service.Logout(context.Background(), 3))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SendOTP(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockMailer)
		expectedError error
	}{
		{
			name:  "code stored and sent",
			email: "user@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmail", mock.Anything, "user@example.com").
					Return(activeUser(1, "user@example.com", "password123"), nil)
				mRepo.On("SetOTP", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
				mMail.On("SendOTP", "user@example.com", mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "unknown email is reported",
			email: "ghost@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:  "mail transport failure surfaces",
			email: "user@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmail", mock.Anything, "user@example.com").
					Return(activeUser(1, "user@example.com", "password123"), nil)
				mRepo.On("SetOTP", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
				mMail.On("SendOTP", "user@example.com", mock.AnythingOfType("string")).Return(assert.AnError)
			},
			expectedError: apperrors.ErrMailDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockRepo, mockMailer)

			service := newAuthServiceForTest(mockRepo, mockMailer)
			err := service.SendOTP(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword_NeverDiscloses(t *testing.T) {
	t.Run("unknown email succeeds silently", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		mockMailer := new(MockMailer)
		service := newAuthServiceForTest(mockRepo, mockMailer)

		assert.NoError(t, service.ForgotPassword(context.Background(), "ghost@example.com"))
		mockMailer.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
	})

	t.Run("mail failure is swallowed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(activeUser(1, "user@example.com", "password123"), nil)
		mockRepo.On("SetOTP", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

		mockMailer := new(MockMailer)
		mockMailer.On("SendOTP", "user@example.com", mock.AnythingOfType("string")).Return(assert.AnError)

		service := newAuthServiceForTest(mockRepo, mockMailer)
		assert.NoError(t, service.ForgotPassword(context.Background(), "user@example.com"))
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	userWithOTP := func(code string, expires time.Time) *model.User {
		user := activeUser(5, "user@example.com", "password123")
		user.IsActive = false
		hashed, _ := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
		codeHash := string(hashed)
		user.OtpCode = &codeHash
		user.OtpExpires = &expires
		return user
	}

	tests := []struct {
		name          string
		code          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "valid code activates the account",
			code: "123456",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").
					Return(userWithOTP("123456", time.Now().Add(2*time.Minute)), nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.IsActive && u.OtpCode == nil && u.OtpExpires == nil
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "no pending code",
			code: "123456",
			setupMock: func(m *MockUserRepository) {
				user := activeUser(5, "user@example.com", "password123")
				user.IsActive = false
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
			},
			expectedError: apperrors.ErrNoOtpPending,
		},
		{
			name: "expired code",
			code: "123456",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").
					Return(userWithOTP("123456", time.Now().Add(-time.Minute)), nil)
			},
			expectedError: apperrors.ErrOtpExpired,
		},
		{
			name: "wrong code",
			code: "000000",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").
					Return(userWithOTP("123456", time.Now().Add(2*time.Minute)), nil)
			},
			expectedError: apperrors.ErrOtpMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthServiceForTest(mockRepo, new(MockMailer))
			user, err := service.VerifyOTP(context.Background(), "user@example.com", tt.code)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.True(t, user.IsActive)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("654321"), bcryptCost)
	codeHash := string(hashed)
	expires := time.Now().Add(2 * time.Minute)

	user := activeUser(9, "user@example.com", "old-password")
	user.OtpCode = &codeHash
	user.OtpExpires = &expires

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Password == "new-password" && u.OtpCode == nil && u.OtpExpires == nil
	})).Return(nil)

	service := newAuthServiceForTest(mockRepo, new(MockMailer))
	err := service.ResetPassword(context.Background(), "user@example.com", "654321", "new-password")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
