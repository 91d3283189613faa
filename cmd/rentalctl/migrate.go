package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/car-rental/internal/config"
	dbpkg "github.com/BruksfildServices01/car-rental/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "creates or updates the database schema",
	SilenceUsage: true,
	RunE:         runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := dbpkg.Open(config.Load())
	if err != nil {
		return err
	}
	if err := dbpkg.Migrate(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return nil
}
