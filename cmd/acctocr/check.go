package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/submersibletoaster/acctocr"
)

var checkCmd = &cobra.Command{
	Use:   "check <digits>...",
	Short: "Check account numbers against the checksum",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	bad := 0
	for _, digits := range args {
		status := "ok"
		if !acctocr.IsValid(digits) {
			status = "invalid"
			bad++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", digits, status)
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d account numbers invalid", bad, len(args))
	}
	return nil
}
