package account

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/infra/repository"
)

func newService(t *testing.T, check DomainCheck) *Service {
	t.Helper()
	d := audit.NewDispatcher(audit.Discard{})
	t.Cleanup(d.Close)
	return NewService(repository.NewRentalMemoryRepository(), d, check).WithCost(bcrypt.MinCost)
}

func validInput() RegisterInput {
	return RegisterInput{
		Username:  "testuser",
		Email:     "Test@Example.com",
		Password1: "s3cret-pass",
		Password2: "s3cret-pass",
		Role:      "normal_user",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *httperr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestRegister(t *testing.T) {
	s := newService(t, nil)

	user, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "normal_user", user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_Manager(t *testing.T) {
	s := newService(t, nil)
	in := validInput()
	in.Role = "manager"

	user, err := s.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Role)
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*RegisterInput)
		field string
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "" }, "username"},
		{"bad username", func(in *RegisterInput) { in.Username = "has space" }, "username"},
		{"bad email", func(in *RegisterInput) { in.Email = "nope" }, "email"},
		{"admin role", func(in *RegisterInput) { in.Role = "admin" }, "role"},
		{"unknown role", func(in *RegisterInput) { in.Role = "pilot" }, "role"},
		{"mismatch", func(in *RegisterInput) { in.Password2 = "other-pass" }, "password2"},
		{"short", func(in *RegisterInput) { in.Password1, in.Password2 = "abc", "abc" }, "password2"},
		{"numeric", func(in *RegisterInput) { in.Password1, in.Password2 = "12345678901", "12345678901" }, "password2"},
		{"longer than bcrypt accepts", func(in *RegisterInput) {
			in.Password1 = strings.Repeat("p", 80)
			in.Password2 = in.Password1
		}, "password2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newService(t, nil)
			in := validInput()
			tc.edit(&in)

			_, err := s.Register(context.Background(), in)
			assert.Contains(t, fieldsOf(t, err), tc.field)
		})
	}
}

func TestRegister_DomainCheck(t *testing.T) {
	s := newService(t, func(string) bool { return false })

	_, err := s.Register(context.Background(), validInput())
	assert.Contains(t, fieldsOf(t, err), "email")
}

func TestRegister_Duplicates(t *testing.T) {
	s := newService(t, nil)
	_, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "fresh@example.com"
	_, err = s.Register(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "username_taken"))

	in = validInput()
	in.Username = "fresh"
	_, err = s.Register(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "email_taken"))
}

func TestAuthenticate(t *testing.T) {
	s := newService(t, nil)
	registered, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	user, err := s.Authenticate(context.Background(), "testuser", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = s.Authenticate(context.Background(), "testuser", "wrong")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))

	_, err = s.Authenticate(context.Background(), "ghost", "s3cret-pass")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

func TestChangePassword(t *testing.T) {
	s := newService(t, nil)
	user, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, OldPassword: "wrong", NewPassword1: "brand-new-pass", NewPassword2: "brand-new-pass",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_old_password"))

	_, err = s.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, OldPassword: "s3cret-pass", NewPassword1: "brand-new-pass", NewPassword2: "other",
	})
	assert.True(t, httperr.IsBusiness(err, "password_mismatch"))

	_, err = s.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, OldPassword: "s3cret-pass", NewPassword1: "short", NewPassword2: "short",
	})
	assert.Contains(t, fieldsOf(t, err), "new_password2")

	long := strings.Repeat("é", 40)
	_, err = s.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, OldPassword: "s3cret-pass", NewPassword1: long, NewPassword2: long,
	})
	assert.Contains(t, fieldsOf(t, err), "new_password2")

	_, err = s.ChangePassword(ctx, ChangePasswordInput{
		UserID: user.ID, OldPassword: "s3cret-pass", NewPassword1: "brand-new-pass", NewPassword2: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "testuser", "brand-new-pass")
	assert.NoError(t, err)
	_, err = s.Authenticate(ctx, "testuser", "s3cret-pass")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}
