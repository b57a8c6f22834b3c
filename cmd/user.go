package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/services"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	userCmd.AddCommand(newUserCreateCmd())
	return userCmd
}

func newUserCreateCmd() *cobra.Command {
	var in services.NewUser

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.InitDatabase(config.Get(), schema()...)
			if err != nil {
				return err
			}
			user, err := services.NewAuthService(db).CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	f := createCmd.Flags()
	f.StringVar(&in.Username, "username", "", "unique login name")
	f.StringVar(&in.Name, "name", "", "display name (defaults to username)")
	f.StringVar(&in.Password, "password", "", "password, stored as a bcrypt hash")
	f.StringVar(&in.Status, "status", "", "status message")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")
	return createCmd
}
