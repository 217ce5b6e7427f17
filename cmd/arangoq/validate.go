package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var validateFile string

var errInvalidQuery = errors.New("query is not valid")

var validateCmd = &cobra.Command{
	Use:   "validate [aql]",
	Short: "Check the syntax of an AQL query without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		aql, err := readQuery(cmd.InOrStdin(), args, validateFile)
		if err != nil {
			return e.fail(err)
		}

		db, err := e.openDatabase()
		if err != nil {
			return e.fail(err)
		}

		valid, err := db.Query().Valid(cmd.Context(), aql)
		if err != nil {
			return e.fail(err)
		}
		if !valid {
			fmt.Fprintln(e.out, "invalid")
			return fmt.Errorf("%w%w", errSilent, errInvalidQuery)
		}

		fmt.Fprintln(e.out, "valid")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Read the query from a file")
}
