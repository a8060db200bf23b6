/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/carevault/apiserver/config"
	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/internal/store"
	"github.com/spf13/cobra"
)

var newUser services.Registration

// userCmd groups account administration commands.
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account directly in the database. Usage:

	carevault user create --username alice --password s3cret --role manager
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		users := services.NewUserService(store.NewUserRepository(dbConn), nil)
		user, err := users.Register(cmd.Context(), newUser)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", user.ID, user.Username, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	flags := userCreateCmd.Flags()
	flags.StringVar(&newUser.Username, "username", "", "login name")
	flags.StringVar(&newUser.Password, "password", "", "password (at least 6 characters)")
	flags.StringVar(&newUser.Role, "role", "carer", "carer or manager")
	flags.StringVar(&newUser.FirstName, "first-name", "", "first name")
	flags.StringVar(&newUser.LastName, "last-name", "", "last name")
	flags.StringVar(&newUser.Email, "email", "", "email address")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
}
