package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/aptgraph/pkg/buildinfo"
	"github.com/matzehuels/aptgraph/pkg/deps"
	errs "github.com/matzehuels/aptgraph/pkg/errors"
)

// Defaults for Config fields left empty.
const (
	DefaultRepoURL   = "http://archive.ubuntu.com/ubuntu"
	DefaultSuite     = "noble"
	DefaultComponent = "main"
	DefaultArch      = "amd64"

	httpTimeout = 60 * time.Second
)

// Config selects which Packages index a Source reads.
type Config struct {
	RepoURL   string       // Mirror root (default: DefaultRepoURL)
	Suite     string       // Distribution codename (default: DefaultSuite)
	Component string       // Archive area (default: DefaultComponent)
	Arch      string       // Binary architecture (default: DefaultArch)
	Index     string       // Explicit index URL or local path; overrides the fields above
	Client    *http.Client // HTTP client (default: 60s timeout)
}

// WithDefaults returns a copy of Config with empty fields filled in.
func (c Config) WithDefaults() Config {
	cfg := c
	if cfg.RepoURL == "" {
		cfg.RepoURL = DefaultRepoURL
	}
	if cfg.Suite == "" {
		cfg.Suite = DefaultSuite
	}
	if cfg.Component == "" {
		cfg.Component = DefaultComponent
	}
	if cfg.Arch == "" {
		cfg.Arch = DefaultArch
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: httpTimeout}
	}
	return cfg
}

// IndexURL returns the location of the Packages index.
func (c Config) IndexURL() string {
	c = c.WithDefaults()
	if c.Index != "" {
		return c.Index
	}
	return fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages.gz",
		strings.TrimRight(c.RepoURL, "/"), c.Suite, c.Component, c.Arch)
}

// Source implements deps.Source over an in-memory Packages index.
type Source struct {
	cfg   Config
	index Index
}

// New creates a Source. The index is not fetched until the first query.
func New(cfg Config) *Source {
	return &Source{cfg: cfg.WithDefaults()}
}

// FromIndex creates a Source over an already parsed index.
func FromIndex(idx Index) *Source {
	return &Source{index: idx}
}

// Load downloads and parses the index if it is not loaded yet. A failed
// load is retried on the next call.
func (s *Source) Load(ctx context.Context) error {
	return s.load(ctx)
}

// DirectDependencies returns the Depends names of name from the index,
// loading it first if needed.
func (s *Source) DirectDependencies(ctx context.Context, name string) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", deps.ErrQuery, err)
	}
	d, ok := s.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", deps.ErrNotFound, name)
	}
	return d, nil
}

// Len returns the number of packages in the loaded index, or 0 before the
// first successful query.
func (s *Source) Len() int { return len(s.index) }

func (s *Source) load(ctx context.Context) error {
	if s.index != nil {
		return nil
	}
	loc := s.cfg.IndexURL()
	body, err := s.open(ctx, loc)
	if err != nil {
		return err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(loc, ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decompress %s", loc)
		}
		defer gz.Close()
		r = gz
	}

	idx, err := ParseIndex(r)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", loc)
	}
	s.index = idx
	return nil
}

func (s *Source) open(ctx context.Context, loc string) (io.ReadCloser, error) {
	u, err := url.Parse(loc)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		path := loc
		if err == nil && u.Scheme == "file" {
			path = u.Path
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "open index")
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "build request for %s", loc)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "fetch %s", loc)
		}
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "fetch %s", loc)
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, errs.Wrap(errs.GetCode(err), err, "fetch %s", loc)
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "status %d", code)
	default:
		return errs.New(errs.ErrCodeNetwork, "status %d", code)
	}
}
