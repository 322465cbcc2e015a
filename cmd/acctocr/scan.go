package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	pb "github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/submersibletoaster/acctocr"
	"github.com/submersibletoaster/acctocr/examine"
	"github.com/submersibletoaster/acctocr/render"
	"github.com/submersibletoaster/acctocr/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file...]",
	Short: "Read every block of the given files, or stdin",
	Long: `Prints one line per block: the account number, or the raw read followed
by ILL (unreadable digits), ERR (bad checksum) or AMB and the possible
corrections. A block that is not three lines plus a blank line stops the scan.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntP("workers", "w", 4, "Number of worker routines")
	scanCmd.Flags().String("mode", "correct", "correct, validate or raw")
	scanCmd.Flags().Bool("color", false, "Colour results by status")
	scanCmd.Flags().Bool("progress", false, "Show a progress bar per file")
	scanCmd.Flags().String("debug-dir", "", "Write a PNG of every block to this directory")
	scanCmd.Flags().Int("debug-scale", 1, "Enlarge debug PNGs by this factor")
}

func runScan(cmd *cobra.Command, args []string) error {
	parser := acctocr.NewParser(acctocr.WithMode(cfg.Mode()))
	out := render.NewWriter(cmd.OutOrStdout(), cfg.Output.Color)
	defer out.Flush()

	if cfg.Debug.Dir != "" {
		if err := os.MkdirAll(cfg.Debug.Dir, 0o755); err != nil {
			return fmt.Errorf("creating debug dir: %w", err)
		}
	}

	if len(args) == 0 {
		return scanReader(cmd.Context(), "stdin", cmd.InOrStdin(), 0, parser, out)
	}
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		total := bytes.Count(data, []byte("\n")) / examine.Lines
		if err := scanReader(cmd.Context(), name, bytes.NewReader(data), total, parser, out); err != nil {
			return err
		}
	}
	return nil
}

func scanReader(ctx context.Context, name string, r io.Reader, total int, parser *acctocr.Parser, out *render.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var bar *pb.ProgressBar
	if cfg.Output.Progress && total > 0 {
		bar = pb.New(total).SetWriter(os.Stderr).Start()
		defer bar.Finish()
	}

	counts := make(map[acctocr.Status]int)
	p := &scan.Pipeline{
		Parser:  parser,
		Workers: cfg.Scan.Workers,
		OnResult: func(scan.Outcome) {
			if bar != nil {
				bar.Increment()
			}
		},
	}
	err := p.Run(ctx, r, func(o scan.Outcome) error {
		counts[o.Result.Status]++
		if cfg.Debug.Dir != "" {
			if err := writeDebug(name, o); err != nil {
				return err
			}
		}
		return out.Write(o.Result)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	log.WithField("file", name).Infof("blocks by status: %v", counts)
	return nil
}

func writeDebug(name string, o scan.Outcome) error {
	b, err := examine.NewBlock(o.Block.Lines)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Debug.Dir, fmt.Sprintf("%s-%04d.png", filepath.Base(name), o.Block.Index))
	return render.SavePNG(path, render.Scale(render.DebugImage(b, o.Result), uint(cfg.Debug.Scale)))
}
