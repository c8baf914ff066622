package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	userName     string
	userRoles    []string
	userPassword string
	userGoogle   bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage sign-in accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add [login-id]",
	Short: "Create a sign-in account",
	Long: `Creates an active account holding the given roles.

Password accounts need --password. Google accounts (--google) use the
login id as the Google email address and have no password.

Example:
  mentorhubctl user add maria@example.org --name "Maria Lopez" --role mentor --password s3cret!`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

func init() {
	userAddCmd.Flags().StringVar(&userName, "name", "", "Full name (defaults to the login id)")
	userAddCmd.Flags().StringSliceVar(&userRoles, "role", nil, "Role to grant: mentor or consultant (repeatable)")
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password for a password account")
	userAddCmd.Flags().BoolVar(&userGoogle, "google", false, "Create a Google sign-in account")
	_ = userAddCmd.MarkFlagRequired("role")

	userCmd.AddCommand(userAddCmd, userListCmd)
}

// newUser builds the account described by the add flags.
func newUser(loginID, name string, roleArgs []string, password string, google bool) (models.User, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" {
		return models.User{}, errors.New("login id is required")
	}
	granted := roles.Clean(roleArgs)
	if len(granted) == 0 {
		return models.User{}, fmt.Errorf("no valid role in %v (want mentor or consultant)", roleArgs)
	}
	if name == "" {
		name = loginID
	}

	u := models.User{
		FullName: name,
		LoginID:  loginID,
		Email:    loginID,
		Roles:    granted,
	}
	if google {
		if password != "" {
			return models.User{}, errors.New("--password cannot be used with --google")
		}
		u.AuthMethod = models.AuthGoogle
		return u, nil
	}

	if err := authutil.ValidatePassword(password); err != nil {
		return models.User{}, err
	}
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.AuthMethod = models.AuthPassword
	u.PasswordHash = hash
	return u, nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	u, err := newUser(args[0], userName, userRoles, userPassword, userGoogle)
	if err != nil {
		return err
	}
	return withDB(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
		created, err := userstore.New(db).Create(ctx, u)
		if err != nil {
			return err
		}
		logger.Info("user created", zap.String("login_id", created.LoginID), zap.Strings("roles", created.Roles))
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", created.LoginID, created.ID.Hex())
		return nil
	})
}

func runUserList(cmd *cobra.Command, args []string) error {
	return withDB(cmd.Context(), func(ctx context.Context, db *mongo.Database) error {
		users, err := userstore.New(db).List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LOGIN ID\tNAME\tROLES\tMETHOD\tSTATUS")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.LoginID, u.FullName, strings.Join(u.Roles, ","), u.AuthMethod, u.Status)
		}
		return tw.Flush()
	})
}
