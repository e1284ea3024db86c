// Package source loads visitors, breakout signups and email aliases from
// CSV and YAML documents addressed by path or storage URL.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/okian/badger/internal/domain/email"
	"github.com/okian/badger/internal/domain/model"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// visitorRow mirrors the visitors CSV header; extra columns are ignored.
type visitorRow struct {
	Email string `csv:"email"`
	Name  string `csv:"name"`
}

// signupColumns is the fixed width of a signups row.
const signupColumns = 5

// signupRow mirrors the header-less signups CSV, in column order.
type signupRow struct {
	Date      string `csv:"date"`
	Email     string `csv:"email"`
	Morning   string `csv:"morning"`
	Afternoon string `csv:"afternoon"`
	Void      string `csv:"void"`
}

// aliasDocument is the alias YAML layout.
type aliasDocument struct {
	EmailMapping map[string]string `yaml:"email_mapping"`
}

// Loader reads input documents through an abstract file service.
type Loader struct {
	fs afs.Service
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithFileService overrides the storage backend.
func WithFileService(fs afs.Service) Option {
	return func(l *Loader) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// NewLoader creates a Loader backed by afs.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{fs: afs.New()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) download(ctx context.Context, location string) ([]byte, error) {
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, location, err)
	}
	return data, nil
}

// Visitors loads visitors in file order. Every row must carry an email and
// a name; all malformed rows are reported together as RecordErrors.
func (l *Loader) Visitors(ctx context.Context, location string) ([]*model.Visitor, error) {
	data, err := l.download(ctx, location)
	if err != nil {
		return nil, err
	}
	var rows []visitorRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, location, err)
	}

	var errs []error
	visitors := make([]*model.Visitor, 0, len(rows))
	for i, r := range rows {
		line := i + 2 // header is line 1
		switch {
		case strings.TrimSpace(r.Email) == "":
			errs = append(errs, &RecordError{Source: location, Line: line, Field: "email"})
			continue
		case strings.TrimSpace(r.Name) == "":
			errs = append(errs, &RecordError{Source: location, Line: line, Field: "name"})
			continue
		}
		visitors = append(visitors, &model.Visitor{
			Position: len(visitors) + 1,
			Email:    r.Email,
			Name:     strings.TrimSpace(r.Name),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return visitors, nil
}

// Signups loads the header-less signups CSV keyed by canonical email.
// Rows wider or narrower than the five signup columns fail with ErrDecode.
func (l *Loader) Signups(ctx context.Context, location string) (*model.SignupSet, error) {
	data, err := l.download(ctx, location)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = signupColumns
	var rows []signupRow
	if err := gocsv.UnmarshalCSVWithoutHeaders(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, location, err)
	}

	var errs []error
	set := model.NewSignupSet()
	for i, r := range rows {
		key := email.Canonical(r.Email)
		if key == "" {
			errs = append(errs, &RecordError{Source: location, Line: i + 1, Field: "email"})
			continue
		}
		set.Put(model.Signup{
			Email:     key,
			Date:      strings.TrimSpace(r.Date),
			Morning:   strings.TrimSpace(r.Morning),
			Afternoon: strings.TrimSpace(r.Afternoon),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

// Aliases loads the email alias map. An empty location yields no aliases.
func (l *Loader) Aliases(ctx context.Context, location string) (map[string]string, error) {
	if location == "" {
		return map[string]string{}, nil
	}
	data, err := l.download(ctx, location)
	if err != nil {
		return nil, err
	}
	var doc aliasDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, location, err)
	}
	if doc.EmailMapping == nil {
		return nil, fmt.Errorf("%w: %s: missing email_mapping", ErrDecode, location)
	}
	return doc.EmailMapping, nil
}
