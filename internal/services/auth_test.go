package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/sbilibin2017/gw-finance-tracker/internal/repositories"
	"github.com/sbilibin2017/gw-finance-tracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name     string
		username string
		email    string
		password string
		confirm  string
		setup    func(r *services.MockUserReader, w *services.MockUserWriter)
		wantErr  error
	}{
		{
			name:     "successful registration",
			username: "  alice ",
			email:    "alice@example.com",
			password: "pass123",
			confirm:  "pass123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "alice").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").Return(nil, nil)
				w.EXPECT().Save(gomock.Any(), "alice", "alice@example.com", gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _, passwordHash string) (int64, error) {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("pass123")))
						return 1, nil
					})
			},
		},
		{
			name:     "empty field",
			username: "alice",
			email:    "   ",
			password: "pass123",
			confirm:  "pass123",
			wantErr:  services.ErrValidation,
		},
		{
			name:     "password mismatch",
			username: "alice",
			email:    "alice@example.com",
			password: "pass123",
			confirm:  "pass124",
			wantErr:  services.ErrValidation,
		},
		{
			name:     "username taken",
			username: "bob",
			email:    "bob@example.com",
			password: "pass123",
			confirm:  "pass123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{ID: 2}, nil)
			},
			wantErr: services.ErrConflict,
		},
		{
			name:     "email taken",
			username: "carol",
			email:    "bob@example.com",
			password: "pass123",
			confirm:  "pass123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "carol").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(&models.UserDB{ID: 2}, nil)
			},
			wantErr: services.ErrConflict,
		},
		{
			name:     "insert race",
			username: "dave",
			email:    "dave@example.com",
			password: "pass123",
			confirm:  "pass123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "dave").Return(nil, nil)
				r.EXPECT().GetByEmail(gomock.Any(), "dave@example.com").Return(nil, nil)
				w.EXPECT().Save(gomock.Any(), "dave", "dave@example.com", gomock.Any()).Return(int64(0), repositories.ErrAlreadyExists)
			},
			wantErr: services.ErrConflict,
		},
		{
			name:     "reader error",
			username: "eve",
			email:    "eve@example.com",
			password: "pass123",
			confirm:  "pass123",
			setup: func(r *services.MockUserReader, w *services.MockUserWriter) {
				r.EXPECT().GetByUsername(gomock.Any(), "eve").Return(nil, dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockUserReader(ctrl)
			mockWriter := services.NewMockUserWriter(ctrl)
			if tt.setup != nil {
				tt.setup(mockReader, mockWriter)
			}

			svc := services.NewAuthService(mockReader, mockWriter, services.NewMockTokenGenerator(ctrl), nil)

			err := svc.Register(context.Background(), tt.username, tt.email, tt.password, tt.confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockJWT := services.NewMockTokenGenerator(ctrl)
	svc := services.NewAuthService(mockReader, services.NewMockUserWriter(ctrl), mockJWT, nil)

	user := &models.UserDB{ID: 5, Username: "alice", PasswordHash: hash(t, "secret")}

	tests := []struct {
		name      string
		username  string
		password  string
		setup     func()
		wantToken string
		wantErr   error
		wantMsg   string
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "secret",
			setup: func() {
				mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
				mockJWT.EXPECT().Generate(gomock.Any(), int64(5), "alice").Return("token123", nil)
			},
			wantToken: "token123",
		},
		{
			name:     "empty password",
			username: "alice",
			wantErr:  services.ErrValidation,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret",
			setup: func() {
				mockReader.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: services.ErrInvalidCredentials,
			wantMsg: "invalid username or password",
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setup: func() {
				mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
			},
			wantErr: services.ErrInvalidCredentials,
			wantMsg: "invalid username or password",
		},
		{
			name:     "jwt error",
			username: "alice",
			password: "secret",
			setup: func() {
				mockReader.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
				mockJWT.EXPECT().Generate(gomock.Any(), int64(5), "alice").Return("", errors.New("sign error"))
			},
			wantErr: errors.New("sign error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			case tt.wantMsg != "":
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantMsg, services.UserMessage(err, ""))
			case errors.Is(tt.wantErr, services.ErrValidation):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	revoker := services.NewMockSessionRevoker(ctrl)
	svc := services.NewAuthService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
		services.NewMockTokenGenerator(ctrl), revoker)

	session := models.Session{UserID: 1, SessionID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	revoker.EXPECT().Revoke(gomock.Any(), "jti-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ttl time.Duration) error {
			assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
			return nil
		})
	assert.NoError(t, svc.Logout(context.Background(), session))

	revoker.EXPECT().Revoke(gomock.Any(), "jti-1", gomock.Any()).Return(errors.New("redis down"))
	assert.Error(t, svc.Logout(context.Background(), session))
}

func TestAuthService_LogoutWithoutRevoker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := services.NewAuthService(services.NewMockUserReader(ctrl), services.NewMockUserWriter(ctrl),
		services.NewMockTokenGenerator(ctrl), nil)

	assert.NoError(t, svc.Logout(context.Background(), models.Session{UserID: 1, SessionID: "jti"}))
}

func TestAuthService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	svc := services.NewAuthService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenGenerator(ctrl), nil)

	reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.UserDB{ID: 1, Username: "alice"}, nil)
	user, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	reader.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, nil)
	_, err = svc.GetProfile(context.Background(), 2)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthService_UpdateProfileRevokesPreviousSession(t *testing.T) {
	current := &models.UserDB{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: hash(t, "secret")}
	input := models.ProfileInput{Username: "alicia", Email: "alice@example.com", CurrentPassword: "secret"}
	session := models.Session{UserID: 1, Username: "alice", SessionID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}

	for _, revokeErr := range []error{nil, errors.New("redis down")} {
		ctrl := gomock.NewController(t)

		reader := services.NewMockUserReader(ctrl)
		writer := services.NewMockUserWriter(ctrl)
		tokens := services.NewMockTokenGenerator(ctrl)
		revoker := services.NewMockSessionRevoker(ctrl)

		reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
		reader.EXPECT().GetByUsername(gomock.Any(), "alicia").Return(nil, nil)
		writer.EXPECT().Update(gomock.Any(), int64(1), "alicia", "alice@example.com", (*string)(nil)).Return(nil)
		gen := tokens.EXPECT().Generate(gomock.Any(), int64(1), "alicia").Return("fresh", nil)
		revoker.EXPECT().Revoke(gomock.Any(), "jti-1", gomock.Any()).After(gen).Return(revokeErr)

		token, err := services.NewAuthService(reader, writer, tokens, revoker).UpdateProfile(context.Background(), session, input)
		assert.NoError(t, err)
		assert.Equal(t, "fresh", token)

		ctrl.Finish()
	}
}

func TestAuthService_UpdateProfileFailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockUserReader(ctrl)
	revoker := services.NewMockSessionRevoker(ctrl)
	reader.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&models.UserDB{ID: 1, Username: "alice", PasswordHash: hash(t, "secret")}, nil)

	svc := services.NewAuthService(reader, services.NewMockUserWriter(ctrl), services.NewMockTokenGenerator(ctrl), revoker)
	_, err := svc.UpdateProfile(context.Background(), models.Session{UserID: 1, SessionID: "jti-1"},
		models.ProfileInput{Username: "alice", Email: "a@example.com", CurrentPassword: "bad"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	current := &models.UserDB{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: hash(t, "secret")}

	tests := []struct {
		name      string
		input     models.ProfileInput
		setup     func(r *services.MockUserReader, w *services.MockUserWriter, g *services.MockTokenGenerator)
		wantToken string
		wantErr   error
	}{
		{
			name:  "rename keeps password",
			input: models.ProfileInput{Username: "alicia", Email: "alice@example.com", CurrentPassword: "secret"},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, g *services.MockTokenGenerator) {
				r.EXPECT().GetByUsername(gomock.Any(), "alicia").Return(nil, nil)
				w.EXPECT().Update(gomock.Any(), int64(1), "alicia", "alice@example.com", (*string)(nil)).Return(nil)
				g.EXPECT().Generate(gomock.Any(), int64(1), "alicia").Return("fresh", nil)
			},
			wantToken: "fresh",
		},
		{
			name: "password change",
			input: models.ProfileInput{Username: "alice", Email: "alice@example.com", CurrentPassword: "secret",
				NewPassword: "n3w", ConfirmPassword: "n3w"},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, g *services.MockTokenGenerator) {
				w.EXPECT().Update(gomock.Any(), int64(1), "alice", "alice@example.com", gomock.Not(gomock.Nil())).
					DoAndReturn(func(_ context.Context, _ int64, _, _ string, passwordHash *string) error {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte("n3w")))
						return nil
					})
				g.EXPECT().Generate(gomock.Any(), int64(1), "alice").Return("fresh", nil)
			},
			wantToken: "fresh",
		},
		{
			name:    "wrong current password",
			input:   models.ProfileInput{Username: "alice", Email: "alice@example.com", CurrentPassword: "bad"},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:  "username of another user",
			input: models.ProfileInput{Username: "bob", Email: "alice@example.com", CurrentPassword: "secret"},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, g *services.MockTokenGenerator) {
				r.EXPECT().GetByUsername(gomock.Any(), "bob").Return(&models.UserDB{ID: 2}, nil)
			},
			wantErr: services.ErrConflict,
		},
		{
			name:  "email of another user",
			input: models.ProfileInput{Username: "alice", Email: "bob@example.com", CurrentPassword: "secret"},
			setup: func(r *services.MockUserReader, w *services.MockUserWriter, g *services.MockTokenGenerator) {
				r.EXPECT().GetByEmail(gomock.Any(), "bob@example.com").Return(&models.UserDB{ID: 2}, nil)
			},
			wantErr: services.ErrConflict,
		},
		{
			name: "confirmation mismatch",
			input: models.ProfileInput{Username: "alice", Email: "alice@example.com", CurrentPassword: "secret",
				NewPassword: "a", ConfirmPassword: "b"},
			wantErr: services.ErrValidation,
		},
		{
			name:    "empty username",
			input:   models.ProfileInput{Username: " ", Email: "alice@example.com", CurrentPassword: "secret"},
			wantErr: services.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockUserReader(ctrl)
			writer := services.NewMockUserWriter(ctrl)
			tokens := services.NewMockTokenGenerator(ctrl)

			reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(current, nil)
			if tt.setup != nil {
				tt.setup(reader, writer, tokens)
			}

			svc := services.NewAuthService(reader, writer, tokens, nil)
			token, err := svc.UpdateProfile(context.Background(), models.Session{UserID: 1, SessionID: "jti-1"}, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
