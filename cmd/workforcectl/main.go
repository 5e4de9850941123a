package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "workforcectl",
	Short: "Workforce admin CLI",
	Long: `workforcectl administers the workforce store directly.

It migrates the schema, seeds an organization from a YAML roster, and prints the weekly
allocation of a project or the burnout risk of a user. Reports are evaluated as the user
given with --as, so the permission gate applies exactly as it does over HTTP.`,
	SilenceUsage: true,
}

func main() {
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPersistentFlags() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "", "store driver: mysql, postgres or sqlite")
	flags.String("db-path", "", "sqlite database file")
	flags.String("db-host", "", "database host")
	flags.String("db-name", "", "database name")
	flags.String("log-level", "", "log level")
	flags.Bool("json", false, "output JSON")
	flags.String("as", "", "username to evaluate reports as")

	_ = viper.BindPFlag("DB_DRIVER", flags.Lookup("db-driver"))
	_ = viper.BindPFlag("DB_PATH", flags.Lookup("db-path"))
	_ = viper.BindPFlag("DB_HOST", flags.Lookup("db-host"))
	_ = viper.BindPFlag("DB_NAME", flags.Lookup("db-name"))
	_ = viper.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = viper.BindPFlag("json", flags.Lookup("json"))
	_ = viper.BindPFlag("as", flags.Lookup("as"))
}

func registerCommands() {
	rootCmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		loadCmd(),
		riskCmd(),
	)
}
