package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var shopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "List the shops of the hypermarket category",
	Long: `Shops fetches the category listing page and prints every shop endpoint
it resolves, in page order. No shop pages are fetched.`,
	Args: cobra.NoArgs,
	RunE: runShops,
}

func init() {
	rootCmd.AddCommand(shopsCmd)
}

func runShops(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	dir := p.collector.Directory(ctx)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Shop", "Endpoint"})
	i := 0
	for endpoint, name := range dir.All() {
		i++
		t.AppendRow(table.Row{i, name, endpoint})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d shops\n", dir.Len())
	return nil
}
