package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/robofi/sdk-go/core/catalog"
	"github.com/robofi/sdk-go/core/config"
	"github.com/robofi/sdk-go/core/marketclient"
	"github.com/robofi/sdk-go/core/types"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	CatalogPath string
	Search      string
	Category    string
	Price       string
	Revenue     string
	Sort        string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketplace robots",
		Long: `List the robots in the marketplace catalog, filtered and sorted the
same way as the marketplace page.

Price and revenue ranges take the bucket keys shown by the filters endpoint,
e.g. --price 1-2 or --revenue 0.2+. Unknown values do not filter.`,
		Example: `  robofi list --category Industrial --sort price-asc
  robofi list --search event
  robofi list --catalog robots.yaml --price 3+ --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog file (YAML or JSON); defaults to the configured catalog or the demo robots")
	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "case-insensitive name search")
	cmd.Flags().StringVar(&opts.Category, "category", string(types.CategoryAll), "robot category (All|Service|Entertainment|Industrial)")
	cmd.Flags().StringVar(&opts.Price, "price", types.BucketAll, "price range bucket")
	cmd.Flags().StringVar(&opts.Revenue, "revenue", types.BucketAll, "revenue range bucket")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(types.SortRecent), "sort key (recent|price-asc|price-desc|revenue-desc|utilization-desc)")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return errors.WithStack(err)
	}
	buckets, err := cfg.Buckets.BucketTables()
	if err != nil {
		return errors.WithStack(err)
	}

	path := opts.CatalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	var source catalog.Source = catalog.NewMockSource()
	if path != "" {
		source = &catalog.FileSource{Path: path}
	}

	client, err := marketclient.NewClient(cmd.Context(),
		marketclient.WithSource(source),
		marketclient.WithBuckets(buckets),
	)
	if err != nil {
		return errors.WithStack(err)
	}

	input := types.ListListingsInput{
		Criteria: types.DefaultFilterCriteria().
			WithSearchText(opts.Search).
			WithCategory(types.Category(opts.Category)).
			WithPriceRange(opts.Price).
			WithRevenueRange(opts.Revenue),
		Sort: types.ParseSortKey(opts.Sort),
	}
	out, err := client.ListListings(cmd.Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	if opts.Format == "json" {
		return writeListingsJSON(cmd.OutOrStdout(), out)
	}
	return writeListingsText(cmd.OutOrStdout(), out)
}

func writeListingsText(w io.Writer, out types.ListListingsOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tREVENUE\tUTILIZATION\tTYPE")
	for _, l := range out.Listings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Price, l.Revenue, l.Utilization, l.Category)
	}
	if err := tw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	_, err := fmt.Fprintf(w, "%d of %d listings\n", len(out.Listings), out.Total)
	return errors.WithStack(err)
}

func writeListingsJSON(w io.Writer, out types.ListListingsOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(map[string]any{
		"listings": out.Listings,
		"matched":  len(out.Listings),
		"total":    out.Total,
	}))
}
