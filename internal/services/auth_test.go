package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"spiralscreen/internal/models"
	"spiralscreen/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		username      string
		password      string
		existingUser  *models.UserDB
		readerErr     error
		writerErr     error
		wantAdmin     bool
		wantErr       error
		expectWritten bool
	}{
		{
			name:          "successful registration",
			username:      "alice",
			password:      "pass123",
			wantAdmin:     false,
			expectWritten: true,
		},
		{
			name:          "lowercase admin gets flag",
			username:      "admin",
			password:      "pass123",
			wantAdmin:     true,
			expectWritten: true,
		},
		{
			name:          "capitalized admin gets flag",
			username:      "Admin",
			password:      "pass123",
			wantAdmin:     true,
			expectWritten: true,
		},
		{
			name:          "uppercase admin gets flag",
			username:      "ADMIN",
			password:      "pass123",
			wantAdmin:     true,
			expectWritten: true,
		},
		{
			name:         "user already exists",
			username:     "bob",
			password:     "pass123",
			existingUser: &models.UserDB{ID: 1, Username: "bob"},
			wantErr:      services.ErrUserAlreadyExists,
		},
		{
			name:      "reader error",
			username:  "eve",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:          "writer error",
			username:      "carol",
			password:      "pass123",
			writerErr:     errors.New("save error"),
			wantErr:       errors.New("save error"),
			expectWritten: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			mockJWT := services.NewMockTokenGenerator(ctrl)

			svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

			mockReader.EXPECT().
				GetByUsername(gomock.Any(), tt.username).
				Return(tt.existingUser, tt.readerErr)

			if tt.expectWritten {
				mockWriter.EXPECT().
					Save(gomock.Any(), tt.username, gomock.Any(), tt.wantAdmin).
					DoAndReturn(func(_ context.Context, _, passwordHash string, _ bool) (int64, error) {
						// The stored value must be a bcrypt hash of the password.
						err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(tt.password))
						assert.NoError(t, err)
						return 1, tt.writerErr
					})
			}

			err := svc.Register(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	storedUser := &models.UserDB{
		ID:           7,
		Username:     "alice",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}

	t.Run("success", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockWriter := services.NewMockUserWriter(ctrl)
		mockJWT := services.NewMockTokenGenerator(ctrl)
		svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(storedUser, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), int64(7), true).Return("signed-token", nil)

		user, token, err := svc.Login(context.Background(), "alice", "correct-password")
		assert.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, int64(7), user.ID)
		assert.True(t, user.IsAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockTokenGenerator(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		_, _, err := svc.Login(context.Background(), "ghost", "whatever")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockTokenGenerator(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(storedUser, nil)

		// Wrong password yields the same error as an unknown user.
		_, _, err := svc.Login(context.Background(), "alice", "wrong-password")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("reader error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), services.NewMockTokenGenerator(ctrl))

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, errors.New("db down"))

		_, _, err := svc.Login(context.Background(), "alice", "correct-password")
		assert.EqualError(t, err, "db down")
	})

	t.Run("token generation error", func(t *testing.T) {
		mockReader := services.NewMockUserReader(ctrl)
		mockJWT := services.NewMockTokenGenerator(ctrl)
		svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), mockJWT)

		mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(storedUser, nil)
		mockJWT.EXPECT().Generate(gomock.Any(), int64(7), true).Return("", errors.New("sign error"))

		_, _, err := svc.Login(context.Background(), "alice", "correct-password")
		assert.EqualError(t, err, "sign error")
	})
}
