package cli

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/aptgraph/pkg/errors"
)

// fileConfig is the TOML config file. Every key provides a default for the
// flag of the same name; flags given on the command line win.
//
//	plantuml_path = "/usr/bin/plantuml"
//	depth         = 4
//	source        = "archive"
//	repo          = "http://deb.debian.org/debian"
//	suite         = "bookworm"
//	timeout       = "10s"
type fileConfig struct {
	PlantUMLPath string `toml:"plantuml_path"`
	Depth        *int   `toml:"depth"`
	Repo         string `toml:"repo"`
	Source       string `toml:"source"`
	Suite        string `toml:"suite"`
	Component    string `toml:"component"`
	Arch         string `toml:"arch"`
	Index        string `toml:"index"`
	AptCachePath string `toml:"apt_cache_path"`
	Timeout      string `toml:"timeout"`
	Format       string `toml:"format"`
	Detailed     *bool  `toml:"detailed"`
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be absent; an explicit path must exist.
func loadConfig(path string) (fileConfig, string, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, "", nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, "", nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, path, errs.Wrap(errs.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, path, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return cfg, path, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, path, nil
}

// apply copies config values into opts for every flag the user did not set.
func (f fileConfig) apply(opts *graphOpts, changed func(flag string) bool) error {
	setString := func(flag, value string, dst *string) {
		if value != "" && !changed(flag) {
			*dst = value
		}
	}
	setString("plantuml-path", f.PlantUMLPath, &opts.plantumlPath)
	setString("repo", f.Repo, &opts.repo)
	setString("source", f.Source, &opts.source)
	setString("suite", f.Suite, &opts.suite)
	setString("component", f.Component, &opts.component)
	setString("arch", f.Arch, &opts.arch)
	setString("index", f.Index, &opts.index)
	setString("apt-cache-path", f.AptCachePath, &opts.aptCachePath)
	setString("format", f.Format, &opts.format)

	if f.Depth != nil && !changed("depth") {
		opts.depth = *f.Depth
	}
	if f.Detailed != nil && !changed("detailed") {
		opts.detailed = *f.Detailed
	}
	if f.Timeout != "" && !changed("timeout") {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "config timeout %q", f.Timeout)
		}
		opts.timeout = d
	}
	return nil
}
