package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/client"
	"github.com/lixenwraith/word-orbit/vmath"
)

func newProbeCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "probe <word>",
		Short: "Fetch a full layout sequence and report its shape",
		Long: `probe drives the layout server through one complete batch
sequence without opening the viewer. Useful for checking server health
and eyeballing the coordinate ranges a word produces.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(args[0], batchSize)
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 20, "words per batch")
	return cmd
}

func probe(word string, batchSize int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cl := client.New(cfg.ServerURL, cfg.Model, nil)

	resolved, exists, err := cl.CheckWord(ctx, word)
	if err != nil {
		return fmt.Errorf("check word %q: %w", word, err)
	}
	if !exists {
		return fmt.Errorf("word %q is not in the %s vocabulary", word, cfg.Model)
	}
	if resolved != word {
		fmt.Printf("resolved %q -> %q\n", word, resolved)
	}

	spec := client.FetchSpec{Anchor: resolved, BatchSize: batchSize}

	var (
		bar       *progressbar.ProgressBar
		total     int
		anchors   int
		positions []r3.Vec
	)
	for batchNum := 0; ; batchNum++ {
		resp, err := cl.FetchBatch(ctx, spec, batchNum)
		if err != nil {
			return fmt.Errorf("batch %d: %w", batchNum, err)
		}
		if bar == nil {
			bar = progressbar.NewOptions(resp.TotalBatches,
				progressbar.OptionSetDescription(fmt.Sprintf("fetching %q", resolved)),
				progressbar.OptionShowCount(),
			)
		}
		bar.Add(1)

		for _, wp := range resp.Points {
			p := wp.Point()
			if err := p.Validate(); err != nil {
				return fmt.Errorf("batch %d word %q: %w", batchNum, wp.Word, err)
			}
			if p.Role.IsAnchor {
				anchors++
			}
			positions = append(positions, p.Pos)
		}
		total += len(resp.Points)

		if resp.IsComplete {
			break
		}
	}
	fmt.Println()

	fmt.Printf("anchor word:   %s\n", resolved)
	fmt.Printf("total points:  %d (%d anchor-flagged)\n", total, anchors)
	if b, ok := vmath.BoundsOf(positions); ok {
		c := b.Center()
		fmt.Printf("cloud center:  (%.3f, %.3f, %.3f)\n", c.X, c.Y, c.Z)
		fmt.Printf("cloud radius:  %.3f\n", b.Radius())
		fmt.Printf("max from origin: %.3f\n", maxNorm(positions))
	}
	if anchors != 1 {
		fmt.Printf("warning: expected exactly one anchor-flagged point, got %d\n", anchors)
	}
	return nil
}

func maxNorm(pts []r3.Vec) float64 {
	m := 0.0
	for _, p := range pts {
		m = math.Max(m, r3.Norm(p))
	}
	return m
}
