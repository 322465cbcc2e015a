package main

import (
	"github.com/spf13/cobra"

	"github.com/submersibletoaster/acctocr"
	"github.com/submersibletoaster/acctocr/render"
)

var sheetOut string

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Write a PNG sheet of the digit templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return render.SavePNG(sheetOut, render.Sheet(acctocr.GetFont()))
	},
}

func init() {
	sheetCmd.Flags().StringVarP(&sheetOut, "out", "o", "sheet.png", "Output PNG")
}
