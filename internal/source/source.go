// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/staranto/snapdiff/internal/aws"
	"github.com/staranto/snapdiff/internal/cacheutil"
	"github.com/staranto/snapdiff/internal/config"
	"github.com/staranto/snapdiff/internal/log"
)

// Stdin is the spec that selects standard input.
const Stdin = "-"

// ErrInvalid is returned for a spec that cannot name a snapshot.
var ErrInvalid = errors.New("invalid snapshot source")

// Source is a readable snapshot location.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

type options struct {
	stdin   io.Reader
	s3      aws.ObjectGetter
	awsOpts []aws.Option
}

// Option customizes New.
type Option func(*options)

// WithStdin replaces os.Stdin as the reader for "-".
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// WithS3Client uses svc instead of a client built from the AWS config chain.
func WithS3Client(svc aws.ObjectGetter) Option {
	return func(o *options) { o.s3 = svc }
}

// WithAWSOptions passes profile/region overrides to the S3 client.
func WithAWSOptions(opts ...aws.Option) Option {
	return func(o *options) { o.awsOpts = append(o.awsOpts, opts...) }
}

// New resolves spec into a Source.
func New(spec string, opts ...Option) (Source, error) {
	o := options{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case spec == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalid)
	case spec == Stdin:
		return &stdinSource{r: o.stdin}, nil
	case strings.HasPrefix(spec, "s3://"):
		obj, err := ParseS3URL(spec)
		if err != nil {
			return nil, err
		}
		return &s3Source{obj: obj, svc: o.s3, awsOpts: o.awsOpts}, nil
	default:
		path, err := absFile(spec)
		if err != nil {
			return nil, err
		}
		return &fileSource{path: path}, nil
	}
}

// absFile makes spec absolute and checks that it is an existing file.
func absFile(spec string) (string, error) {
	path, err := filepath.Abs(spec)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("snapshot file does not exist: %s", spec)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalid, spec)
	}
	return path, nil
}

// ParseS3URL parses s3://bucket/key[?versionId=ID].
func ParseS3URL(spec string) (aws.Object, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return aws.Object{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return aws.Object{}, fmt.Errorf("%w: want s3://bucket/key, got %s", ErrInvalid, spec)
	}
	return aws.Object{Bucket: u.Host, Key: key, VersionID: u.Query().Get("versionId")}, nil
}

type stdinSource struct {
	r io.Reader
}

func (s *stdinSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}

func (s *stdinSource) String() string { return "<stdin>" }

type fileSource struct {
	path string
}

func (s *fileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	return f, nil
}

func (s *fileSource) String() string { return s.path }

type s3Source struct {
	obj     aws.Object
	svc     aws.ObjectGetter
	awsOpts []aws.Option
}

// Open fetches the object. Versioned objects never change, so they are served
// from and written to the local cache.
func (s *s3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	sub := []string{"s3", s.obj.Bucket, s.obj.Key}

	if s.obj.VersionID != "" {
		purgeCache()
		if entry, ok := cacheutil.Read(sub, s.obj.VersionID); ok {
			return io.NopCloser(bytes.NewReader(entry.Data)), nil
		}
	}

	if s.svc == nil {
		cfg, err := aws.LoadAWSConfig(ctx, s.awsOpts...)
		if err != nil {
			return nil, err
		}
		s.svc = aws.NewS3(cfg)
	}

	data, err := aws.Fetch(ctx, s.svc, s.obj)
	if err != nil {
		return nil, err
	}

	if s.obj.VersionID != "" {
		if err := cacheutil.Write(sub, s.obj.VersionID, data); err != nil {
			log.WithError(err).Warn("failed to cache snapshot")
		}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *s3Source) String() string { return s.obj.String() }

func purgeCache() {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}
}
