/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package objectstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

type fakeBucket struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func responseError(code int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New("remote failure"),
		},
	}
}

func TestReadSegment(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{
		"catalog/007.csv": "Saison,Jour,Type,Phrase,Format,Url\n1,1,Conseil,\"Bois, souvent\",texte,\n1,2,Conseil,Dors,,\n",
	}}
	s := newStore(bucket, Config{Bucket: "b", Prefix: "/catalog/"}, zerolog.Nop())

	rows, err := s.ReadSegment(context.Background(), "007")
	if err != nil {
		t.Fatalf("read segment: %v", err)
	}
	if len(rows) != 2 || rows[0]["Phrase"] != "Bois, souvent" || rows[1]["Jour"] != "2" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if bucket.keys[0] != "catalog/007.csv" {
		t.Fatalf("unexpected key %q", bucket.keys[0])
	}

	if _, err := s.ReadSegment(context.Background(), "404"); !errors.Is(err, store.ErrSegmentNotFound) {
		t.Fatalf("expected ErrSegmentNotFound, got %v", err)
	}
}

func TestReadSegmentClassifiesErrors(t *testing.T) {
	s := newStore(&fakeBucket{err: responseError(503)}, Config{Bucket: "b"}, zerolog.Nop())
	if _, err := s.ReadSegment(context.Background(), "007"); !retry.IsTransient(err) {
		t.Fatalf("503 should be transient, got %v", err)
	}

	s = newStore(&fakeBucket{err: responseError(403)}, Config{Bucket: "b"}, zerolog.Nop())
	_, err := s.ReadSegment(context.Background(), "007")
	if err == nil || retry.IsTransient(err) || errors.Is(err, store.ErrSegmentNotFound) {
		t.Fatalf("403 should be fatal, got %v", err)
	}

	s = newStore(&fakeBucket{err: responseError(404)}, Config{Bucket: "b"}, zerolog.Nop())
	if _, err := s.ReadSegment(context.Background(), "007"); !errors.Is(err, store.ErrSegmentNotFound) {
		t.Fatalf("404 should map to not found, got %v", err)
	}
}

func TestParseCSVSemicolonAndBOM(t *testing.T) {
	rows, err := ParseCSV([]byte("\xef\xbb\xbfSaison;Jour;Type;Phrase\r\n2;3;Aphorisme;Carpe diem\r\n;;;\r\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 || rows[0]["Saison"] != "2" || rows[0]["Phrase"] != "Carpe diem" {
		t.Fatalf("unexpected rows: %v", rows)
	}

	rows, err = ParseCSV(nil)
	if err != nil || rows != nil {
		t.Fatalf("empty object: rows=%v err=%v", rows, err)
	}
}

func TestKeyWithoutPrefix(t *testing.T) {
	s := newStore(&fakeBucket{}, Config{Bucket: "b"}, zerolog.Nop())
	if got := s.Key("007"); got != "007.csv" {
		t.Fatalf("key = %q", got)
	}
}
