package userapp

import (
	"context"
	"testing"
	"time"

	"localinfo/internal/adapters/database"
	"localinfo/internal/core/apperr"
	userPort "localinfo/internal/ports/user"
	"localinfo/internal/testutil"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var secret = []byte("test-secret")

func newService(t *testing.T) *UserService {
	db := testutil.NewDB(t)
	return NewUserService(database.NewUserRepositoryDatabase(db), database.NewTransactionManager(db), secret, zap.NewNop())
}

func registerRequest(email string) userPort.RegisterRequest {
	return userPort.RegisterRequest{
		Name:         "Jane",
		Nickname:     "nick",
		Email:        email,
		Password:     "s3cret",
		Roles:        []string{"general"},
		Neighborhood: "Downtown",
		District:     "Central",
		City:         "Springfield",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	now := time.Now()
	s.now = func() time.Time { return now }

	res, err := s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, []string{"GENERAL"}, res.Roles)
	assert.Equal(t, "Downtown", res.Region.Neighborhood)

	stored, found, err := s.UserRepository.FindByID(ctx, res.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotEqual(t, "s3cret", stored.Password)

	login, err := s.LoginUser(ctx, "jane@mail.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenTTL).Unix(), login.ExpiresAt)

	claims := &jwt.StandardClaims{}
	_, err = jwt.ParseWithClaims(login.Token, claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.Id)
	assert.Equal(t, "1", claims.Subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	require.NoError(t, err)

	_, err = s.LoginUser(ctx, "jane@mail.com", "nope")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	_, err = s.LoginUser(ctx, "nobody@mail.com", "s3cret")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	s := newService(t)
	req := registerRequest("not-an-email")
	req.Roles = []string{"SUPERUSER"}

	_, err := s.RegisterUser(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	fields := apperr.FieldsOf(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "roles")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	first, err := s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	require.NoError(t, err)

	_, err = s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, s.DeleteUser(ctx, first.ID))
	_, err = s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestEditUser(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	created, err := s.RegisterUser(ctx, registerRequest("jane@mail.com"))
	require.NoError(t, err)

	req := registerRequest("jane@other.com")
	req.Nickname = "janie"
	req.Roles = []string{"ADMIN", "GENERAL"}
	edited, err := s.EditUser(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "janie", edited.Nickname)
	assert.Equal(t, "jane@other.com", edited.Email)
	assert.ElementsMatch(t, []string{"ADMIN", "GENERAL"}, edited.Roles)

	_, err = s.LoginUser(ctx, "jane@other.com", "s3cret")
	require.NoError(t, err)

	_, err = s.EditUser(ctx, 999, req)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	a, err := s.RegisterUser(ctx, registerRequest("a@mail.com"))
	require.NoError(t, err)
	b, err := s.RegisterUser(ctx, registerRequest("b@mail.com"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, a.ID))

	_, err = s.FindUser(ctx, a.ID)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(s.DeleteUser(ctx, a.ID)))

	users, err := s.FindUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, b.ID, users[0].ID)

	_, err = s.LoginUser(ctx, "a@mail.com", "s3cret")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
