package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lumenportal/internal/audit"
	"lumenportal/internal/auth"
	"lumenportal/internal/cache"
	"lumenportal/internal/model"
	"lumenportal/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
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

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByLevel(ctx context.Context, level model.AccessLevel) (int64, error) {
	args := m.Called(ctx, level)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTransaction runs fn against the mock itself so transactional paths can
// be scripted with the same expectations.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

func newTestService(t *testing.T, repo repository.UserRepository) (AuthService, *auth.JWTService) {
	t.Helper()
	codec, err := auth.NewJWTService("test-secret", "HS256", "alea-lumen-auth", time.Hour)
	require.NoError(t, err)
	recorder := audit.NewRecorder(nil, codec)
	return NewAuthService(repo, codec, recorder, cache.New("", "", 0)), codec
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthService_Login(t *testing.T) {
	storedHash := hashOf(t, "senhasecreta1")

	tests := []struct {
		name        string
		email       string
		password    string
		setupMock   func(*MockUserRepository)
		wantOK      bool
		wantMessage string
		wantKind    Kind
	}{
		{
			name:     "successful login",
			email:    "ana@empresa.com",
			password: "senhasecreta1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@empresa.com").Return(&model.User{
					ID:           3,
					Name:         "Ana",
					Email:        "ana@empresa.com",
					PasswordHash: storedHash,
					Level:        model.LevelNormal,
					Sector:       "Financeiro",
				}, nil)
			},
			wantOK: true,
		},
		{
			name:     "email is normalized before lookup",
			email:    "  ANA@Empresa.COM  ",
			password: "senhasecreta1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@empresa.com").Return(&model.User{
					ID:           3,
					Email:        "ana@empresa.com",
					PasswordHash: storedHash,
					Level:        model.LevelNormal,
				}, nil)
			},
			wantOK: true,
		},
		{
			name:     "unknown email",
			email:    "naoexiste@empresa.com",
			password: "qualquercoisa",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "naoexiste@empresa.com").
					Return(nil, repository.ErrUserNotFound)
			},
			wantOK:      false,
			wantMessage: MsgInvalidCredentials,
			wantKind:    KindUnauthorized,
		},
		{
			name:     "wrong password",
			email:    "ana@empresa.com",
			password: "senhaerrada",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@empresa.com").Return(&model.User{
					ID:           3,
					Email:        "ana@empresa.com",
					PasswordHash: storedHash,
					Level:        model.LevelNormal,
				}, nil)
			},
			wantOK:      false,
			wantMessage: MsgInvalidCredentials,
			wantKind:    KindUnauthorized,
		},
		{
			name:        "empty email",
			email:       "   ",
			password:    "senhasecreta1",
			setupMock:   func(m *MockUserRepository) {},
			wantOK:      false,
			wantMessage: MsgInvalidCredentials,
			wantKind:    KindUnauthorized,
		},
		{
			name:        "empty password",
			email:       "ana@empresa.com",
			password:    "",
			setupMock:   func(m *MockUserRepository) {},
			wantOK:      false,
			wantMessage: MsgInvalidCredentials,
			wantKind:    KindUnauthorized,
		},
		{
			name:     "store failure becomes generic internal error",
			email:    "ana@empresa.com",
			password: "senhasecreta1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ana@empresa.com").
					Return(nil, errors.New("disk on fire"))
			},
			wantOK:      false,
			wantMessage: MsgLoginInternal,
			wantKind:    KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc, _ := newTestService(t, mockRepo)
			res := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantOK {
				assert.True(t, res.OK)
				assert.NotEmpty(t, res.Token)
				require.NotNil(t, res.User)
				assert.Equal(t, "ana@empresa.com", res.User.Email)
				assert.Equal(t, model.RoleNormal, res.Role)
			} else {
				assert.False(t, res.OK)
				assert.Equal(t, tt.wantMessage, res.Message)
				assert.Equal(t, tt.wantKind, res.Kind)
				assert.Empty(t, res.Token)
				assert.Nil(t, res.User)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginNoAccountExistenceOracle(t *testing.T) {
	storedHash := hashOf(t, "senhasecreta1")

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "existe@empresa.com").Return(&model.User{
		ID:           1,
		Email:        "existe@empresa.com",
		PasswordHash: storedHash,
		Level:        model.LevelNormal,
	}, nil)
	mockRepo.On("FindByEmail", mock.Anything, "naoexiste@empresa.com").
		Return(nil, repository.ErrUserNotFound)

	svc, _ := newTestService(t, mockRepo)

	wrongPassword := svc.Login(context.Background(), "existe@empresa.com", "senhaerrada")
	unknownEmail := svc.Login(context.Background(), "naoexiste@empresa.com", "senhaerrada")

	assert.False(t, wrongPassword.OK)
	assert.False(t, unknownEmail.OK)
	assert.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

func TestAuthService_RequireAuth(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc, codec := newTestService(t, mockRepo)

	adminToken, err := codec.Generate(&model.User{ID: 1, Name: "Admin", Email: "admin@local", Level: model.LevelAdmin})
	require.NoError(t, err)
	normalToken, err := codec.Generate(&model.User{ID: 2, Name: "Ana", Email: "ana@empresa.com", Level: model.LevelNormal})
	require.NoError(t, err)

	t.Run("valid token without role requirement", func(t *testing.T) {
		res := svc.RequireAuth(normalToken)
		assert.True(t, res.OK)
		require.NotNil(t, res.User)
		assert.Equal(t, uint(2), res.User.UserID)
		assert.Equal(t, model.RoleNormal, res.User.Role)
	})

	t.Run("valid token with matching role", func(t *testing.T) {
		res := svc.RequireAuth(adminToken, model.RoleAdmin)
		assert.True(t, res.OK)
	})

	t.Run("role not allowed", func(t *testing.T) {
		res := svc.RequireAuth(normalToken, model.RoleAdmin)
		assert.False(t, res.OK)
		assert.Equal(t, KindForbidden, res.Kind)
		assert.Equal(t, fmt.Sprintf(MsgAccessDeniedFmt, "ADMIN"), res.Message)
	})

	t.Run("role set is listed sorted in the denial", func(t *testing.T) {
		res := svc.RequireAuth(normalToken, model.RoleCompliance, model.RoleAdmin)
		assert.False(t, res.OK)
		assert.Equal(t, fmt.Sprintf(MsgAccessDeniedFmt, "ADMIN, COMPLIANCE"), res.Message)
	})

	t.Run("missing token", func(t *testing.T) {
		res := svc.RequireAuth("")
		assert.False(t, res.OK)
		assert.Equal(t, KindUnauthorized, res.Kind)
		assert.Equal(t, MsgSessionExpired, res.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCodec, err := auth.NewJWTService("test-secret", "HS256", "alea-lumen-auth", -time.Hour)
		require.NoError(t, err)
		expired, err := expiredCodec.Generate(&model.User{ID: 2, Level: model.LevelNormal})
		require.NoError(t, err)

		res := svc.RequireAuth(expired)
		assert.False(t, res.OK)
		assert.Equal(t, MsgSessionExpired, res.Message)
	})
}
