package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/jwt"
	jwtMocks "lodge/infras/jwt/mocks"
	"lodge/infras/otel/mocks"
	"lodge/internal/domains/auth/model/dto"
	"lodge/internal/domains/auth/service"
	userMocks "lodge/internal/domains/user/mocks"
	userModel "lodge/internal/domains/user/model"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	return svc, mockUserRepo, mockJWT
}

func testTokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
		wantRole  string
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Password:  "secret-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				jwtSvc.EXPECT().
					GenerateTokenPair(gomock.Any(), "jane@example.com", constant.RoleUser).
					Return(testTokenPair(), nil)
			},
			wantErr:  false,
			wantRole: constant.RoleUser,
		},
		{
			name: "email already registered",
			req: dto.RegisterRequest{
				FirstName: "Jane",
				Email:     "jane@example.com",
				Password:  "secret-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.RegisterRequest{
				FirstName: "Jane",
				Email:     "jane@example.com",
				Password:  "secret-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, jwtSvc := newService(t)

			tt.setupMock(userRepo, jwtSvc)

			res, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Email, res.Email)
				assert.Equal(t, tt.wantRole, res.Role)
				assert.NotEmpty(t, res.AccessToken)
			}
		})
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	svc, userRepo, jwtSvc := newService(t)

	userRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	userRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	jwtSvc.EXPECT().
		GenerateTokenPair(gomock.Any(), "boss@example.com", constant.RoleAdmin).
		Return(testTokenPair(), nil)

	res, err := svc.RegisterAdmin(context.Background(), dto.RegisterRequest{
		FirstName: "Boss",
		Email:     "boss@example.com",
		Password:  "secret-password",
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.RoleAdmin, res.Role)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("correct-password")
	assert.NoError(t, err)

	storedUser := userModel.User{
		ID:       "user-1",
		Email:    "jane@example.com",
		Password: hashed,
		Role:     constant.RoleUser,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "jane@example.com",
				Password: "correct-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedUser, nil)

				jwtSvc.EXPECT().
					GenerateTokenPair("user-1", "jane@example.com", constant.RoleUser).
					Return(testTokenPair(), nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "jane@example.com",
				Password: "wrong-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedUser, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown email",
			req: dto.LoginRequest{
				Email:    "ghost@example.com",
				Password: "correct-password",
			},
			setupMock: func(userRepo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, jwtSvc := newService(t)

			tt.setupMock(userRepo, jwtSvc)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.AccessToken)
				assert.NotEmpty(t, res.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		svc, _, jwtSvc := newService(t)

		jwtSvc.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(testTokenPair(), nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "valid-refresh-token",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc, _, jwtSvc := newService(t)

		jwtSvc.EXPECT().
			RefreshTokens("bad-token").
			Return(nil, errors.New("invalid token"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "bad-token",
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, err := password.Hash("current-password")
	assert.NoError(t, err)

	storedUser := userModel.User{
		ID:       "user-1",
		Email:    "jane@example.com",
		Password: hashed,
	}

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(userRepo *userMocks.MockUser)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful change",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "current-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedUser, nil)

				userRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "wrong current password",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "wrong-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(storedUser, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "user not found",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "current-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func(userRepo *userMocks.MockUser) {
				userRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _ := newService(t)

			tt.setupMock(userRepo)

			err := svc.ChangePassword(context.Background(), tt.req, "user-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
