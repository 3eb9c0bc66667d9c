package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"kol-marketplace/internal/domain"
	"kol-marketplace/internal/repository/pkg"
)

type ImportBeginner interface {
	BeginImport(ctx context.Context) (pkg.ImportTx, error)
}

// Uploader archives raw import files to object storage.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ArchiveAndRun stores the raw CSV in object storage under imports/ before
// importing it. Archive failures are logged and do not block the import.
func ArchiveAndRun(ctx context.Context, r io.Reader, repo ImportBeginner, store Uploader, logger *log.Logger) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read upload: %w", err)
	}
	key := fmt.Sprintf("imports/%d.csv", time.Now().UnixNano())
	if _, err := store.Upload(ctx, key, data, "text/csv"); err != nil {
		logger.Printf("import: archive %s: %v", key, err)
	}
	return NewCSVImporter(bytes.NewReader(data), repo, logger).Run(ctx)
}

// CSVImporter reads package catalog spreadsheets and loads them into the
// database. The whole file is one transaction: a bad row aborts the import
// and rolls back every row written before it.
type CSVImporter struct {
	reader *csv.Reader
	repo   ImportBeginner
	logger *log.Logger
}

func NewCSVImporter(r io.Reader, repo ImportBeginner, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{reader: csvr, repo: repo, logger: logger}
}

const missing = "N/A"

type csvRow struct {
	Header         string
	Cost           string
	Texts          [7]string
	Media          string
	Link           string
	Format         string
	MonthlyTraffic string
	TurnaroundTime string
}

// Run parses CSV rows and inserts package headers and items. Headers are
// deduplicated on the exact header/cost/text1..7 tuple; a changed tuple gets
// a fresh header row, the old one is never updated. Returns the number of
// items inserted.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	tx, err := i.repo.BeginImport(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	var imported int
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if err := i.save(ctx, tx, row, line); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, tx pkg.ImportTx, row *csvRow, line int) error {
	if row.Header == missing || row.Cost == missing {
		return fmt.Errorf("row %d: missing Header or Cost", line)
	}
	cost, err := strconv.ParseFloat(row.Cost, 64)
	if err != nil {
		return fmt.Errorf("row %d: invalid cost %q", line, row.Cost)
	}

	candidate := domain.PackageHeader{
		Header: row.Header,
		Cost:   cost,
		Text1:  row.Texts[0],
		Text2:  row.Texts[1],
		Text3:  row.Texts[2],
		Text4:  row.Texts[3],
		Text5:  row.Texts[4],
		Text6:  row.Texts[5],
		Text7:  row.Texts[6],
	}

	existing, err := tx.HeadersByText(ctx, row.Header)
	if err != nil {
		return fmt.Errorf("row %d: header lookup: %w", line, err)
	}

	var headerID string
	for _, h := range existing {
		if h.Matches(candidate) {
			headerID = h.ID
			i.logger.Printf("import: reusing header %q (%s)", h.Header, h.ID)
			break
		}
	}
	if headerID == "" {
		created, err := tx.InsertHeader(ctx, candidate)
		if err != nil {
			return fmt.Errorf("row %d: insert header: %w", line, err)
		}
		headerID = created.ID
	}

	_, err = tx.InsertItem(ctx, domain.PackageItem{
		HeaderID:       headerID,
		Media:          row.Media,
		Link:           row.Link,
		Format:         row.Format,
		MonthlyTraffic: row.MonthlyTraffic,
		TurnaroundTime: row.TurnaroundTime,
	})
	if err != nil {
		return fmt.Errorf("row %d: insert item: %w", line, err)
	}
	return nil
}

// headerIndex keys columns on a normalized name so "Monthly Traffic",
// "monthly traffic" and "MonthlyTraffic" all resolve to the same column.
func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}
	return idx
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
}

func parseRow(record []string, index map[string]int) *csvRow {
	row := &csvRow{
		Header:         pick(record, index, "Header"),
		Cost:           pick(record, index, "Cost"),
		Media:          pick(record, index, "Media"),
		Link:           pick(record, index, "Link"),
		Format:         pick(record, index, "Format"),
		MonthlyTraffic: pick(record, index, "Monthly Traffic"),
		TurnaroundTime: pick(record, index, "Turnaround time"),
	}
	for n := range row.Texts {
		row.Texts[n] = pick(record, index, fmt.Sprintf("Text%d", n+1))
	}
	return row
}

// pick reads a named column, defaulting absent or empty cells to "N/A".
func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[normalizeHeader(key)]
	if !ok || pos >= len(record) {
		return missing
	}
	v := strings.TrimSpace(record[pos])
	if v == "" {
		return missing
	}
	return v
}
