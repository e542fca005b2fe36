package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"photorank/domain/criteria"
	"photorank/domain/ranking"
	"photorank/domain/rating"
	"photorank/infrastructure/export"
	"photorank/infrastructure/logging"
)

var validate = validator.New()

// ratingsFile is a session rated outside the window:
//
//	criteria: [Sharpness, Composition]
//	images:
//	  - path: a.png
//	    scores: {Sharpness: 8, Composition: 6}
//
// Missing scores count as the default rating.
type ratingsFile struct {
	Folder   string       `yaml:"folder"`
	Criteria []string     `yaml:"criteria" validate:"required,min=1,dive,required"`
	Images   []ratedImage `yaml:"images" validate:"required,min=1,dive"`
}

type ratedImage struct {
	Path   string         `yaml:"path" validate:"required"`
	Scores map[string]int `yaml:"scores"`
}

func newRankCmd(root *rootOptions) *cobra.Command {
	var ratingsPath, outPath string

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank images from a ratings file",
		Long: `Rank reads a YAML ratings file, ranks the images the same way the window
does and prints the table. With --out the results are also written as YAML or
Parquet, chosen by the file extension.`,
		Example: "  photorank rank --ratings ratings.yaml --out results.parquet",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctx, closeLog, err := bootstrap(cmd.Context(), root.configPath)
			if err != nil {
				return err
			}
			defer closeLog()
			logger := logging.From(logging.WithAttrs(ctx, "command", "rank"))

			rf, err := readRatings(ratingsPath)
			if err != nil {
				return err
			}
			res, err := rankRatings(rf)
			if err != nil {
				return err
			}
			logger.Info("Ranked ratings file", "path", ratingsPath, "images", res.Len())

			if err := printRankings(cmd.OutOrStdout(), res); err != nil {
				return err
			}

			if outPath == "" {
				return nil
			}
			report := export.NewReport(uuid.NewString(), rf.Folder, res, time.Now().UTC())
			format, err := export.WriteFile(outPath, report, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s results to %s\n", format, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&ratingsPath, "ratings", "", "YAML ratings file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write results to a .yaml or .parquet file")
	_ = cmd.MarkFlagRequired("ratings")

	return cmd
}

func readRatings(path string) (*ratingsFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()

	return parseRatings(f)
}

func parseRatings(r io.Reader) (*ratingsFile, error) {
	var rf ratingsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("ratings file is empty")
		}
		return nil, fmt.Errorf("parse ratings: %w", err)
	}
	if err := validate.Struct(&rf); err != nil {
		return nil, fmt.Errorf("invalid ratings: %w", err)
	}
	return &rf, nil
}

// rankRatings fills a rating sheet from the file and ranks it.
// Out-of-range scores are clamped.
func rankRatings(rf *ratingsFile) (ranking.Results, error) {
	list := criteria.NewList()
	for _, c := range rf.Criteria {
		if _, err := list.Add(c); err != nil {
			return ranking.Results{}, fmt.Errorf("criterion %q: %w", c, err)
		}
	}
	labels := list.Labels()

	images := make([]string, len(rf.Images))
	seen := make(map[string]bool, len(rf.Images))
	for i, img := range rf.Images {
		if seen[img.Path] {
			return ranking.Results{}, fmt.Errorf("image %q listed twice", img.Path)
		}
		seen[img.Path] = true
		images[i] = img.Path
	}

	sheet := rating.NewSheet()
	sheet.Init(images, labels)
	for _, img := range rf.Images {
		for c, v := range img.Scores {
			if _, err := sheet.Set(img.Path, criteria.Normalize(c), v); err != nil {
				return ranking.Results{}, fmt.Errorf("%s: criterion %q: %w", img.Path, c, err)
			}
		}
	}

	return ranking.Compute(images, labels, sheet), nil
}

func printRankings(w io.Writer, res ranking.Results) error {
	headers := append([]string{"Rank", "Image", "Score"}, res.Criteria...)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if row == 0 {
				return style.Foreground(lipgloss.Color("46"))
			}
			return style
		})

	for _, e := range res.Entries {
		cells := []string{strconv.Itoa(e.Rank), e.Name(), strconv.Itoa(e.Score)}
		for _, s := range e.Scores {
			cells = append(cells, strconv.Itoa(s))
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}
