package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cratedig/cratedig/internal/config"
	"github.com/cratedig/cratedig/internal/errmsg"
	"github.com/cratedig/cratedig/internal/history"
)

func init() {
	cmdRoot.AddCommand(cmdHistory())
}

func cmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "List past searches",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, err := config.Load()
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
			}

			store, err := history.Open(cfg.HistoryPath)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpHistoryOpen, err))
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpHistoryList, err))
			}
			if len(entries) == 0 {
				fmt.Println("No history.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tARTIST\tALBUM\tQUERIES\tFOUND\tBEST\tSCORE\tDL")
			for _, e := range entries {
				dl := ""
				if e.Downloaded {
					dl = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
					humanize.Time(e.QueriedAt),
					e.Artist,
					e.Album,
					e.QueryCount,
					e.CandidateCount,
					e.BestUsername,
					e.BestScore,
					dl,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int("limit", 20, "maximum entries to display")
	return cmd
}
