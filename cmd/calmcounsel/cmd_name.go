package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name [NEW NAME]",
	Short: "Show or set your display name",
	Long:  `Without arguments prints the stored name. With arguments stores them as the new name; pass "" to clear it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, current.names.UserName())
			return nil
		}
		if err := current.names.SaveUserName(strings.Join(args, " ")); err != nil {
			return err
		}
		fmt.Fprintf(out, "name set to %q\n", current.names.UserName())
		return nil
	},
}
