package export

import (
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
)

// ParquetRow is the flat row layout of a parquet export, one per ranked image.
// Criteria and Scores are parallel lists.
type ParquetRow struct {
	SessionID   string    `parquet:"session_id"`
	Folder      string    `parquet:"folder"`
	CompletedAt time.Time `parquet:"completed_at,timestamp"`
	Rank        int64     `parquet:"rank"`
	Image       string    `parquet:"image"`
	Name        string    `parquet:"name"`
	Score       int64     `parquet:"score"`
	Criteria    []string  `parquet:"criteria"`
	Scores      []int64   `parquet:"scores"`
}

// ParquetWriter writes one parquet row per ranked image.
type ParquetWriter struct{}

func (ParquetWriter) Format() string { return FormatParquet }

func (ParquetWriter) Write(w io.Writer, report *Report) error {
	pw := parquet.NewGenericWriter[ParquetRow](w)
	if _, err := pw.Write(report.ParquetRows()); err != nil {
		_ = pw.Close()
		return err
	}
	return pw.Close()
}

// ParquetRows flattens the report.
func (r *Report) ParquetRows() []ParquetRow {
	rows := make([]ParquetRow, len(r.Rankings))
	for i, row := range r.Rankings {
		scores := make([]int64, len(r.Criteria))
		for j, c := range r.Criteria {
			scores[j] = int64(row.Scores[c])
		}
		rows[i] = ParquetRow{
			SessionID:   r.SessionID,
			Folder:      r.Folder,
			CompletedAt: r.CompletedAt,
			Rank:        int64(row.Rank),
			Image:       row.Image,
			Name:        row.Name,
			Score:       int64(row.Score),
			Criteria:    r.Criteria,
			Scores:      scores,
		}
	}
	return rows
}
