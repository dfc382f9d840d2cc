package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/sandeepkv93/daygrid/internal/storage"
	"github.com/spf13/cobra"
)

func newHistoryCommand(o *options) *cobra.Command {
	var (
		limit  int
		source string
		purge  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded day selections.",
		Example: `
daygrid history --db grid.db
daygrid history --db grid.db --limit 5 --source mouse
daygrid history --db grid.db --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			if cfg.DatabasePath == "" {
				return errors.New("history needs a database: pass --db or set DAYGRID_DB")
			}
			repo, err := storage.OpenSQLite(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := context.Background()
			if purge {
				n, err := repo.DeleteSelections(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d selection(s)\n", n)
				return nil
			}
			items, err := repo.ListSelections(ctx, storage.SelectionListFilter{Source: source, Limit: limit})
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows to show (0 for all)")
	cmd.Flags().StringVar(&source, "source", "", "only show selections from keyboard or mouse")
	cmd.Flags().BoolVar(&purge, "clear", false, "delete the recorded history")
	return cmd
}

func printHistory(w io.Writer, items []storage.Selection) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, "no selections recorded")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Day"), bold.Sprint("Source"), bold.Sprint("Selected At"))
	for _, item := range items {
		tbl.AddRow(item.ID, item.Day, item.Source, item.SelectedAt.Local().Format("2006-01-02 15:04:05"))
	}
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(w, tbl)
}
