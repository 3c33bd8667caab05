package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/wordpress-mobile/fluxc-go/internal/infrastructure/wpcom"
)

// ProxyOptions holds flags for the proxy command.
type ProxyOptions struct {
	*RootOptions
	SiteID int64
	Select string
}

// NewProxyCommand creates the proxy command.
func NewProxyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProxyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "proxy <path>",
		Short: "GET an arbitrary WordPress.com or site API path",
		Long: `Perform an authenticated GET and print the raw JSON response.
Without --site the path is relative to the WordPress.com API root; with
--site it is sent to the site's wp-json API.

Example:
  fluxc proxy "/rest/v1.1/me?fields=ID,username"
  fluxc proxy /wc/v3/system_status --site 1 --select environment.version`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, params := wpcom.ParseRequestURL(args[0])
			return withApp(cmd.Context(), rootOpts, func(ctx context.Context, app *App) error {
				var (
					body []byte
					err  error
				)
				if opts.SiteID != 0 {
					site, siteErr := app.Site(ctx, opts.SiteID)
					if siteErr != nil {
						return siteErr
					}
					body, err = app.Proxy.PerformWPAPIRequest(ctx, site, path, params)
				} else {
					body, err = app.Proxy.PerformWPComRequest(ctx, path, params)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, body, opts.Select)
			})
		},
	}
	cmd.Flags().Int64Var(&opts.SiteID, "site", 0, "local id of the site to query")
	cmd.Flags().StringVar(&opts.Select, "select", "", "gjson path to print instead of the whole response")
	return cmd
}

func printJSON(cmd *cobra.Command, body []byte, selector string) error {
	if selector == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	}
	result := gjson.GetBytes(body, selector)
	if !result.Exists() {
		return fmt.Errorf("%q not found in response", selector)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Raw)
	return nil
}
