package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/submersibletoaster/acctocr"
	"github.com/submersibletoaster/acctocr/glyph"
)

var refCmd = &cobra.Command{
	Use:   "ref",
	Short: "Check the digit font against itself and list one-off neighbours",
	RunE:  runRef,
}

func runRef(cmd *cobra.Command, args []string) error {
	font := acctocr.GetFont()
	w := cmd.OutOrStdout()
	perfect := 0
	edge := 0
	for d := 0; d < glyph.Digits; d++ {
		r := font.Query(font.Template(d))
		if r[0].Digit == d && r[0].Score == 0 && (len(r) < 2 || r[1].Score > 0) {
			perfect++
		} else {
			edge++
		}
		var near []string
		for _, n := range font.Neighbours(d) {
			near = append(near, fmt.Sprint(n))
		}
		c := font.Template(d)
		fmt.Fprintf(w, "%d  %s  one off: [%s]\n", d, strings.ReplaceAll(c.String(), "\n", "|"), strings.Join(near, " "))
	}
	log.Infof("Perfect 1st match %d , edge cases %d", perfect, edge)
	if edge > 0 {
		return fmt.Errorf("%d templates do not match themselves uniquely", edge)
	}
	return nil
}
