package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/nfrund/taskboard/internal/config"
	"github.com/nfrund/taskboard/internal/server"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes the server mounts",
		Long: `Builds the application against an in-memory backend and prints its
route table. No database connection is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := server.New(cmd.Context(), routeListingConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}
			defer s.Shutdown(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH")
			for _, r := range s.Routes() {
				fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
			}
			return w.Flush()
		},
	}
}

// routeListingConfig is a minimal valid configuration; routes do not depend on it.
func routeListingConfig() *config.Config {
	return &config.Config{
		AppAddr:        ":0",
		SessionSecret:  "route-listing-only-secret",
		SessionTTL:     time.Hour,
		AuthBackend:    config.AuthBackendMemory,
		SignOutTimeout: time.Second,
		Layout:         "collapsible",
		ImageBaseURL:   "https://picsum.photos",
	}
}
