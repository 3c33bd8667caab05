package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordpress-mobile/fluxc-go/internal/domain/bloggingprompt"
)

// PromptsOptions holds flags for the prompts command.
type PromptsOptions struct {
	*RootOptions
	SiteID int64
	Number int
	From   string
}

// NewPromptsCommand creates the prompts command.
func NewPromptsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromptsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Fetch blogging prompts for a site",
		Long: `Fetch blogging prompts starting at a day, cache them and print one per line.

Example:
  fluxc prompts --site 1 --number 10 --from 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := time.Now()
			if opts.From != "" {
				parsed, err := bloggingprompt.ParseDate(opts.From)
				if err != nil {
					return fmt.Errorf("invalid --from %q: %w", opts.From, err)
				}
				from = parsed
			}
			return withApp(cmd.Context(), rootOpts, func(ctx context.Context, app *App) error {
				site, err := app.Site(ctx, opts.SiteID)
				if err != nil {
					return err
				}
				prompts, err := app.Prompts.FetchPrompts(ctx, site, opts.Number, from)
				if err != nil {
					return err
				}
				return printPrompts(cmd, prompts)
			})
		},
	}
	cmd.Flags().Int64Var(&opts.SiteID, "site", 0, "local id of the site (required)")
	cmd.Flags().IntVar(&opts.Number, "number", 10, "number of prompts to fetch")
	cmd.Flags().StringVar(&opts.From, "from", "", "first day, YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func printPrompts(cmd *cobra.Command, prompts []bloggingprompt.Prompt) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tID\tANSWERED\tTEXT")
	for _, p := range prompts {
		fmt.Fprintf(w, "%s\t%d\t%t\t%s\n", bloggingprompt.FormatDate(p.Date), p.ID, p.IsAnswered, p.Text)
	}
	return w.Flush()
}
