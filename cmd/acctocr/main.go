// Command acctocr reads account numbers drawn with pipes and underscores.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/submersibletoaster/acctocr/config"
)

var (
	verbose    bool
	configFile string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "acctocr",
	Short: "Read seven-segment account numbers from text scans",
	Long: `acctocr reads files made of 4-line blocks. Each block draws a nine digit
account number with pipes and underscores over three lines, followed by a
blank line. Numbers are checked against the account checksum and single
misread digits are corrected where only one correction is possible.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Flags(), configFile)
		if err != nil {
			return err
		}
		cfg.ApplyLogging(verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")

	rootCmd.AddCommand(scanCmd, checkCmd, refCmd, sheetCmd)
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "acctocr:", err)
		os.Exit(1)
	}
}
