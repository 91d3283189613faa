// Command rentalctl runs administrative tasks against the rental database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rentalctlCmd = &cobra.Command{
	Use:   "rentalctl [command]",
	Short: "car rental administration tool",
	Long: `
rentalctl migrates the schema and manages accounts directly in the database
configured by DATABASE_URL (a .env file in the working directory is honoured).
`,
}

func init() {
	rentalctlCmd.AddCommand(migrateCmd, createUserCmd)
}

func main() {
	if err := rentalctlCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
