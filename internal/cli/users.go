package cli

import (
	"presskit-cli/internal/api"
	"presskit-cli/internal/model"

	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard users",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersShowCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			users, err := app.Client().ListUsers(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": users, "total": len(users)})
		},
	}
}

func newUsersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			u, err := app.Client().GetUser(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
}

func userUpsertFlags(cmd *cobra.Command, u *api.UserUpsert, confirm *string) {
	cmd.Flags().StringVar(&u.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&u.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&u.Login, "login", "", "Login name")
	cmd.Flags().StringVar(&u.Password, "password", "", "Password")
	cmd.Flags().StringVar(confirm, "confirm-password", "", "Password confirmation")
	cmd.Flags().StringVar((*string)(&u.Role), "role", string(model.RoleEditor), "Role (superadmin|admin|editor)")
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var u api.UserUpsert
	var confirm string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			form := UserForm{
				Name:            u.Name,
				Email:           u.Email,
				Password:        u.Password,
				ConfirmPassword: confirm,
				Role:            u.Role,
				Creating:        true,
			}
			if problems := form.Validate(); len(problems) > 0 {
				return writeErr(cmd, validationError(problems))
			}
			created, err := app.Client().CreateUser(cmd.Context(), u)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}
	userUpsertFlags(cmd, &u, &confirm)
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var u api.UserUpsert
	var confirm string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return writeErr(cmd, err)
			}
			form := UserForm{
				Name:            u.Name,
				Email:           u.Email,
				Password:        u.Password,
				ConfirmPassword: confirm,
				Role:            u.Role,
			}
			if problems := form.Validate(); len(problems) > 0 {
				return writeErr(cmd, validationError(problems))
			}
			updated, err := app.Client().UpdateUser(cmd.Context(), args[0], u)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	userUpsertFlags(cmd, &u, &confirm)
	return cmd
}
