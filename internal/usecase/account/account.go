package account

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/car-rental/internal/audit"
	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/validators"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt rejects longer input.
	maxPasswordBytes = 72
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// DomainCheck reports whether the domain of an email address accepts mail.
type DomainCheck func(email string) bool

type Service struct {
	repo        rental.Repository
	audit       *audit.Dispatcher
	checkDomain DomainCheck
	cost        int
}

// NewService builds the account use cases. checkDomain may be nil to skip
// the DNS lookup on registration.
func NewService(repo rental.Repository, audit *audit.Dispatcher, checkDomain DomainCheck) *Service {
	return &Service{
		repo:        repo,
		audit:       audit,
		checkDomain: checkDomain,
		cost:        bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// --------- Register ---------

type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
	Role      string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	verr := &httperr.ValidationError{}

	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		verr.Add("username", "This field is required.")
	case len([]rune(username)) > maxUsernameLength:
		verr.Add("username", "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(username):
		verr.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case email == "":
		verr.Add("email", "This field is required.")
	case !validators.IsEmailSyntaxValid(email):
		verr.Add("email", "Enter a valid email address.")
	case s.checkDomain != nil && !s.checkDomain(email):
		verr.Add("email", "The email domain does not look valid.")
	}

	role, ok := access.ParseRole(in.Role)
	if !ok || !role.SelfAssignable() {
		verr.Add("role", "Select a valid choice.")
	}

	if in.Password1 != in.Password2 {
		verr.Add("password2", "The two password fields didn't match.")
	} else if msg := passwordProblem(in.Password1, username); msg != "" {
		verr.Add("password2", msg)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password1)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		var dup *rental.DuplicateError
		if errors.As(err, &dup) {
			return nil, httperr.ErrBusiness(dup.Field + "_taken")
		}
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionUserRegistered,
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": user.Role},
	})

	return user, nil
}

// --------- Login ---------

func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return user, nil
}

// --------- Profile ---------

func (s *Service) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, rental.ErrNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return user, nil
}

// --------- Change password ---------

type ChangePasswordInput struct {
	UserID       uint
	OldPassword  string
	NewPassword1 string
	NewPassword2 string
}

func (s *Service) ChangePassword(ctx context.Context, in ChangePasswordInput) (*models.User, error) {
	user, err := s.Profile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return nil, httperr.ErrBusiness("invalid_old_password")
	}

	if in.NewPassword1 != in.NewPassword2 {
		return nil, httperr.ErrBusiness("password_mismatch")
	}

	if msg := passwordProblem(in.NewPassword1, user.Username); msg != "" {
		return nil, (&httperr.ValidationError{}).Add("new_password2", msg)
	}

	hash, err := s.hash(in.NewPassword1)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   audit.ActionPasswordChanged,
		Entity:   "user",
		EntityID: &user.ID,
	})

	return user, nil
}

// --------- Helpers ---------

// HashPassword is used by the admin CLI when creating accounts directly.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

func (s *Service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

// passwordProblem returns a user-facing message for a weak password, or "".
func passwordProblem(password, username string) string {
	if len([]rune(password)) < minPasswordLength {
		return "This password is too short. It must contain at least 8 characters."
	}
	if len(password) > maxPasswordBytes {
		return "This password is too long. It must contain at most 72 bytes."
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return "This password is entirely numeric."
	}

	if username != "" && strings.EqualFold(password, username) {
		return "The password is too similar to the username."
	}

	return ""
}
