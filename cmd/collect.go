// Collect pipeline.
// The root command runs the whole crawl:
// resolve shops → fetch and extract each shop → keep valid flyers → write JSON.
//
// An optional report (.md or .pdf) is written alongside the JSON.

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/flyerpipe/core"
	"github.com/gaurav-prasanna/flyerpipe/core/output"
	"github.com/gaurav-prasanna/flyerpipe/core/render"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	var report core.Renderer
	if p.cfg.Report != "" {
		if report, err = selectReportRenderer(p.cfg.Report); err != nil {
			return err
		}
	}

	writer, err := output.New(p.cfg.Output)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	startTime := time.Now()
	out := cmd.OutOrStdout()

	categoryURL, _ := p.collector.CategoryURL()
	p.logger.InfoContext(ctx, "run started", "category", categoryURL, "output", p.cfg.Output)
	fmt.Fprintf(out, "Resolving shops from %s...\n", categoryURL)

	dir := p.collector.Directory(ctx)
	fmt.Fprintf(out, "Found %d shops to process\n", dir.Len())

	var shops []core.ShopFlyers
	for shop := range p.collector.Shops(ctx, dir) {
		fmt.Fprintf(out, "  ✓ %s: %d flyers\n", shop.Shop.Name, len(shop.Flyers))
		shops = append(shops, shop)
	}
	if err := ctx.Err(); err != nil {
		p.logger.WarnContext(ctx, "run interrupted, writing collected flyers", "err", err)
	}

	meta := core.RunMetadata{
		Source:      categoryURL,
		GeneratedAt: p.now().Format(core.TimestampLayout),
	}

	data, err := render.NewJSONRenderer().Render(shops, meta)
	if err != nil {
		return fmt.Errorf("rendering flyers: %w", err)
	}
	if err := writer.Write(data); err != nil {
		p.logger.ErrorContext(ctx, "failed to write output", "path", p.cfg.Output, "err", err)
		return err
	}
	fmt.Fprintf(out, "✓ Written: %s\n", p.cfg.Output)

	if report != nil {
		if err := writeReport(report, p.cfg.Report, shops, meta); err != nil {
			// The JSON file is the result of the run; a report is a courtesy.
			p.logger.ErrorContext(ctx, "failed to write report", "path", p.cfg.Report, "err", err)
		} else {
			fmt.Fprintf(out, "✓ Written: %s\n", p.cfg.Report)
		}
	}

	elapsed := time.Since(startTime)
	total := len(core.Flatten(shops))
	p.logger.InfoContext(ctx, "run finished",
		"shops", len(shops),
		"flyers", total,
		"duration", elapsed)

	printSummary(cmd, shops, total, elapsed)
	return nil
}

// selectReportRenderer picks the report format from the file extension.
func selectReportRenderer(path string) (core.Renderer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown":
		return render.NewMarkdownRenderer(), nil
	case ".pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q (use .md or .pdf)", ext)
	}
}

func writeReport(renderer core.Renderer, path string, shops []core.ShopFlyers, meta core.RunMetadata) error {
	data, err := renderer.Render(shops, meta)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	writer, err := output.New(path)
	if err != nil {
		return err
	}
	return writer.Write(data)
}

func printSummary(cmd *cobra.Command, shops []core.ShopFlyers, total int, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Shop", "Valid flyers"})
	for _, shop := range shops {
		t.AppendRow(table.Row{shop.Shop.Name, len(shop.Flyers)})
	}
	t.AppendFooter(table.Row{"Total", total})
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "Done in %s\n", elapsed.Round(time.Millisecond))
}
