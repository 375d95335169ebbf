// Package commands implements the workie admin CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/workielk/workie-api/internal/config"
	"github.com/workielk/workie-api/internal/db"
)

// database is the shared connection used by all subcommands
var database *gorm.DB

func initDatabase() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	database, err = db.New(cfg.DB)
	return err
}

func init() {
	RootCmd.AddCommand(jobsCmd)
	RootCmd.AddCommand(applicationsCmd)
	RootCmd.AddCommand(usersCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "workie",
	Short: "Workie CLI - inspect marketplace jobs, applications and users",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initDatabase()
	},
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
