package sampledata

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/okian/badger/pkg/logger"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

type aliasDocument struct {
	EmailMapping map[string]string `yaml:"email_mapping"`
}

// Write stores the dataset under dir as the three service input documents.
// dir may be a local path or any URL the file service understands.
func Write(ctx context.Context, fs afs.Service, dir string, ds *Dataset) error {
	if dir == "" {
		return fmt.Errorf("%w: empty output location", ErrWrite)
	}
	if fs == nil {
		fs = afs.New()
	}
	exists, err := fs.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dir, err)
	}
	if !exists {
		if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, dir, err)
		}
	}

	visitors, err := gocsv.MarshalBytes(&ds.Visitors)
	if err != nil {
		return fmt.Errorf("%w: visitors: %w", ErrWrite, err)
	}

	var signups bytes.Buffer
	if err := gocsv.MarshalWithoutHeaders(&ds.Signups, &signups); err != nil {
		return fmt.Errorf("%w: signups: %w", ErrWrite, err)
	}

	aliases, err := yaml.Marshal(aliasDocument{EmailMapping: ds.Aliases})
	if err != nil {
		return fmt.Errorf("%w: aliases: %w", ErrWrite, err)
	}

	docs := []struct {
		name string
		data []byte
	}{
		{VisitorsFile, visitors},
		{SignupsFile, signups.Bytes()},
		{AliasesFile, aliases},
	}
	for _, d := range docs {
		location := url.Join(dir, d.name)
		if err := fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(d.data)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, location, err)
		}
		logger.Get().Debug(ctx, "sample input written", logger.String("location", location), logger.Int("bytes", len(d.data)))
	}
	return nil
}
