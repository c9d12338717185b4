// Package reftable reads the postal code reference tables published by GISCO.
package reftable

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/evlt/nutstools/internal/domain"
	"github.com/evlt/nutstools/internal/ports"
)

const (
	regionColumn = 0
	postalColumn = 1
)

type Loader struct {
	comma  rune
	policy domain.DuplicatePolicy
}

type Option func(*Loader)

// WithDuplicatePolicy sets how rows with an already seen postal code are handled.
func WithDuplicatePolicy(p domain.DuplicatePolicy) Option {
	return func(l *Loader) { l.policy = p }
}

// WithComma overrides the field separator (default ';').
func WithComma(r rune) Option {
	return func(l *Loader) { l.comma = r }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		comma:  ';',
		policy: domain.DuplicateLastWins,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.TableLoader = (*Loader)(nil)

// Load reads a plain or zip-compressed table. Compression is picked from the
// file extension.
func (l *Loader) Load(path string) (*domain.ReferenceTable, error) {
	if _, err := os.Stat(path); err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "reftable.load", Kind: kind, Path: path, Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return l.loadZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{Op: "reftable.load", Kind: domain.KindExecution, Path: path, Err: err}
	}
	defer f.Close()

	return l.parse(path, f)
}

func (l *Loader) loadZip(path string) (*domain.ReferenceTable, error) {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return nil, &domain.OpError{Op: "reftable.load_zip", Kind: domain.KindDataFormat, Path: path, Err: err}
	}
	defer rz.Close()

	for _, zf := range rz.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		return l.parseZipEntry(path, zf)
	}

	return nil, &domain.OpError{
		Op:   "reftable.load_zip",
		Kind: domain.KindDataFormat,
		Path: path,
		Err:  fmt.Errorf("archive holds no files: %w", domain.ErrDataFormat),
	}
}

func (l *Loader) parseZipEntry(path string, zf *zip.File) (*domain.ReferenceTable, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, &domain.OpError{Op: "reftable.load_zip", Kind: domain.KindDataFormat, Path: path, Err: err}
	}
	defer rc.Close()

	return l.parse(path, rc)
}

func (l *Loader) parse(path string, r io.Reader) (*domain.ReferenceTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = l.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("empty table: %w", domain.ErrDataFormat)
		}
		return nil, formatError(path, err)
	}
	if len(header) <= postalColumn {
		return nil, formatError(path, fmt.Errorf("header has %d column(s), need at least 2: %w", len(header), domain.ErrDataFormat))
	}

	b := domain.NewTableBuilder(l.policy)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatError(path, err)
		}

		line, _ := cr.FieldPos(0)
		if len(rec) <= postalColumn {
			return nil, formatError(path, fmt.Errorf("line %d: %d column(s), need at least 2: %w", line, len(rec), domain.ErrDataFormat))
		}

		postal := CleanCell(rec[postalColumn])
		if postal == "" {
			continue
		}
		region := domain.RegionCode(CleanCell(rec[regionColumn]))
		if err := b.Add(postal, region); err != nil {
			return nil, formatError(path, fmt.Errorf("line %d: %w", line, err))
		}
	}

	return b.Build(path), nil
}

// CleanCell drops single quotes and every whitespace rune from a cell.
func CleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\'' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func formatError(path string, err error) error {
	return &domain.OpError{
		Op:   "reftable.parse",
		Kind: domain.KindDataFormat,
		Path: path,
		Err:  err,
	}
}
