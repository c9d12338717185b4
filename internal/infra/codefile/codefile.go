// Package codefile reads postal code input files and writes lookup results.
package codefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/infra/reftable"
)

// Missing is printed in text output for postal codes without a region.
const Missing = "-"

// ReadPostalCodes reads the first column of a comma separated file with a
// header row. Quotes and whitespace are stripped from every value.
func ReadPostalCodes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "codefile.read", Kind: kind, Path: path, Err: err}
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("missing header row: %w", domain.ErrDataFormat)
		}
		return nil, &domain.OpError{Op: "codefile.read", Kind: domain.KindDataFormat, Path: path, Err: err}
	}

	var out []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.OpError{Op: "codefile.read", Kind: domain.KindDataFormat, Path: path, Err: err}
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, reftable.CleanCell(rec[0]))
	}
	return out, nil
}

// DefaultOutputPath derives "<input without extension>_nuts<level>.csv".
func DefaultOutputPath(input string, level domain.Level) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s_nuts%d.csv", base, int(level))
}

// WriteCSV writes results with a "postal_code,NUTS<level>" header. Postal
// codes without a region get an empty cell.
func WriteCSV(w io.Writer, results []domain.Lookup, level domain.Level) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"postal_code", level.ColumnName()}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.PostalCode, string(r.Region)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes one aligned "<postal code>    <region>" line per result.
func WriteText(w io.Writer, results []domain.Lookup) error {
	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', 0)
	for _, r := range results {
		region := string(r.Region)
		if !r.Found {
			region = Missing
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.PostalCode, region); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteFile writes results as CSV to path, replacing any existing file.
func WriteFile(path string, results []domain.Lookup, level domain.Level) error {
	f, err := os.Create(path)
	if err != nil {
		return &domain.OpError{Op: "codefile.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := WriteCSV(f, results, level); err != nil {
		_ = f.Close()
		return &domain.OpError{Op: "codefile.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &domain.OpError{Op: "codefile.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}
