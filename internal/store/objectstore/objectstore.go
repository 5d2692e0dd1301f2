/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package objectstore reads catalog segments from S3-compatible object storage.
//
// Each program is one CSV object, <prefix>/<program>.csv, whose first line is
// the catalog header.
package objectstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

// Config selects the bucket and the credentials.
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // For S3-compatible services (MinIO, Spaces, etc.)
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string
}

// getter is the slice of the S3 client the catalog needs.
type getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store implements store.CatalogStore.
type Store struct {
	client getter
	bucket string
	prefix string
	logger zerolog.Logger
}

var _ store.CatalogStore = (*Store)(nil)

// New builds an S3 client from the default credential chain, or from static
// keys when both are set. SDK retries are disabled; callers retry with their
// own policy.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
		awsconfig.WithHTTPClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newStore(client, cfg, logger), nil
}

func newStore(client getter, cfg Config, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger.With().Str("component", "catalog_objects").Str("bucket", cfg.Bucket).Logger(),
	}
}

// Key returns the object key of a program's segment.
func (s *Store) Key(programID string) string {
	if s.prefix == "" {
		return programID + ".csv"
	}
	return path.Join(s.prefix, programID+".csv")
}

// ReadSegment downloads and parses the program's CSV object.
func (s *Store) ReadSegment(ctx context.Context, programID string) ([]store.Row, error) {
	key := s.Key(programID)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("program %s (s3://%s/%s): %w", programID, s.bucket, key, store.ErrSegmentNotFound)
		}
		return nil, classify(fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err))
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("read s3://%s/%s: %w", s.bucket, key, err))
	}
	rows, err := ParseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse s3://%s/%s: %w", s.bucket, key, err)
	}
	s.logger.Debug().Str("key", key).Int("rows", len(rows)).Msg("catalog segment downloaded")
	return rows, nil
}

// ParseCSV reads a header line followed by data lines. Semicolon separated
// files, as exported by French locale spreadsheets, are detected from the header.
func ParseCSV(data []byte) ([]store.Row, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		r.Comma = ';'
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return store.RowsFromValues(header, records[1:]), nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

// classify marks throttling and server errors as retriable.
func classify(err error) error {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		code := re.HTTPStatusCode()
		if code == http.StatusTooManyRequests || code >= 500 {
			return retry.Transient(err)
		}
	}
	return err
}
