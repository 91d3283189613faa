package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/car-rental/internal/config"
	dbpkg "github.com/BruksfildServices01/car-rental/internal/db"
	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	infraRepo "github.com/BruksfildServices01/car-rental/internal/infra/repository"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/usecase/account"
	"github.com/BruksfildServices01/car-rental/internal/validators"
)

var userFlags struct {
	username  string
	email     string
	password  string
	role      string
	superuser bool
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "creates an account with any role",
	Long: `
Creates a user directly, bypassing registration. Unlike /register/ it can
grant the admin role and the superuser flag.
`,
	SilenceUsage: true,
	RunE:         runCreateUser,
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&userFlags.username, "username", "", "login name (required)")
	f.StringVar(&userFlags.email, "email", "", "email address (required)")
	f.StringVar(&userFlags.password, "password", "", "initial password (required)")
	f.StringVar(&userFlags.role, "role", string(access.RoleNormalUser), "normal_user, manager, admin or empty")
	f.BoolVar(&userFlags.superuser, "superuser", false, "grant superuser")

	for _, name := range []string{"username", "email", "password"} {
		_ = createUserCmd.MarkFlagRequired(name)
	}
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	db, err := dbpkg.Open(config.Load())
	if err != nil {
		return err
	}

	user, err := createUser(cmd.Context(), infraRepo.NewRentalGormRepository(db))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, role=%q, superuser=%t)\n",
		user.ID, user.Username, user.Role, user.IsSuperuser)
	return nil
}

func createUser(ctx context.Context, repo rental.Repository) (*models.User, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	role, ok := access.ParseRole(userFlags.role)
	if !ok {
		return nil, errors.Newf("unknown role %q", userFlags.role)
	}

	email := strings.ToLower(strings.TrimSpace(userFlags.email))
	if !validators.IsEmailSyntaxValid(email) {
		return nil, errors.Newf("invalid email %q", userFlags.email)
	}

	hash, err := account.HashPassword(userFlags.password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     strings.TrimSpace(userFlags.username),
		Email:        email,
		PasswordHash: hash,
		Role:         string(role),
		IsSuperuser:  userFlags.superuser,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, rental.ErrDuplicate) {
			return nil, errors.Wrapf(err, "user %q", user.Username)
		}
		return nil, err
	}
	return user, nil
}
