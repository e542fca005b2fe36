package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"photorank/domain/archive"
	"photorank/infrastructure/config"
	"photorank/infrastructure/logging"
)

var errArchiveDisabled = errors.New("archive is not configured: set archive.enabled in the config or " + config.EnvArchiveURI)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ctx, closeLog, err := bootstrap(cmd.Context(), root.configPath)
			if err != nil {
				return err
			}
			defer closeLog()
			ctx = logging.WithAttrs(ctx, "command", "history")

			if !cfg.Archive.Enabled {
				return errArchiveDisabled
			}

			service, closeArchive, err := openArchive(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeArchive()

			records, err := service.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			logging.From(ctx).Debug("Listed archived sessions", "count", len(records))

			return printHistory(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sessions to list")

	return cmd
}

func printHistory(w io.Writer, records []*archive.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No archived sessions.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Completed", "ID", "Folder", "Images", "Winner", "Score").
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		})

	for _, r := range records {
		winner, score := "-", "-"
		if e, ok := r.Winner(); ok {
			winner, score = e.Name(), strconv.Itoa(e.Score)
		}
		t.Row(
			r.CompletedAt.Local().Format("2006-01-02 15:04"),
			r.ID,
			displayPath(r.Folder),
			strconv.Itoa(r.ImageCount()),
			winner,
			score,
		)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// displayPath shortens p relative to the working directory when possible.
func displayPath(p string) string {
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
