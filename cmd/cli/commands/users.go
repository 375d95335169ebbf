package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workielk/workie-api/internal/db/models"
	"github.com/workielk/workie-api/internal/db/repos"
)

func init() {
	usersCmd.AddCommand(listUsersCmd)
	usersCmd.AddCommand(createUserCmd)

	listUsersCmd.Flags().StringP("role", "r", "", "Filter users by role (client, worker, admin)")

	createUserCmd.Flags().StringP("name", "n", "", "User name")
	createUserCmd.Flags().StringP("email", "e", "", "User email")
	createUserCmd.Flags().StringP("role", "r", "client", "User role (client, worker, admin)")
	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var role *models.UserRole
		if roleStr, _ := cmd.Flags().GetString("role"); roleStr != "" {
			parsed, err := models.ParseUserRole(roleStr)
			if err != nil {
				return err
			}
			role = &parsed
		}

		users, err := repos.NewUserRepository(database).
			List(context.Background(), role, &models.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		return printJSON(users)
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		roleStr, _ := cmd.Flags().GetString("role")

		role, err := models.ParseUserRole(roleStr)
		if err != nil {
			return err
		}

		user := &models.User{Name: name, Email: email, Role: role}
		if err := repos.NewUserRepository(database).Create(context.Background(), user); err != nil {
			return err
		}

		return printJSON(user)
	},
}
