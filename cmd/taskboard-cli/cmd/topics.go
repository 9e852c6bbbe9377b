package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/nfrund/taskboard/internal/server"
	"github.com/nfrund/taskboard/internal/topicmgr"
	"github.com/spf13/cobra"
)

type topicInfo struct {
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

func newTopicsCmd() *cobra.Command {
	var (
		format string
		module string
	)

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the event topics modules publish",
		Long: `Boots the application against an in-memory backend and lists every
topic its modules declared.

Examples:
  taskboard-cli topics                      # table of all topics
  taskboard-cli topics --module dashboard   # only dashboard topics
  taskboard-cli topics --format json        # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := server.New(cmd.Context(), routeListingConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				return err
			}
			defer s.Shutdown(cmd.Context())

			var topics []topicInfo
			for _, t := range s.Topics() {
				if module != "" && t.Module() != module {
					continue
				}
				topics = append(topics, describe(t))
			}

			switch format {
			case "table":
				return printTopicTable(cmd.OutOrStdout(), topics)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"topics": topics, "count": len(topics)})
			default:
				return fmt.Errorf("unsupported output format %q, use table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Filter by module name")
	return cmd
}

func describe(t topicmgr.Topic) topicInfo {
	return topicInfo{
		Name:        t.Name(),
		Module:      t.Module(),
		Description: t.Description(),
		Example:     t.Example(),
	}
}

func printTopicTable(out io.Writer, topics []topicInfo) error {
	if len(topics) == 0 {
		_, err := fmt.Fprintln(out, "No topics found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODULE\tDESCRIPTION")
	for _, t := range topics {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name, t.Module, t.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\nTotal: %d topics\n", len(topics))
	return err
}
