package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ReadFile reads the YAML document at path and parses it.
func ReadFile(path string) (*Configuration, error) {
	// #nosec G304 -- the configuration path is chosen by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrFileRead, path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a single YAML document and checks that every required field
// is present. Any failure is reported as ErrParse and no value is returned.
func Parse(data []byte) (*Configuration, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var cfg Configuration
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: multiple documents or trailing content", ErrParse)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &cfg, nil
}

// validate reports every missing required field at once.
func validate(cfg *Configuration) error {
	var missing []string
	require := func(ok bool, field string) {
		if !ok {
			missing = append(missing, field)
		}
	}

	require(strings.TrimSpace(cfg.Client.ID) != "", "client.id")
	require(strings.TrimSpace(cfg.Client.Name) != "", "client.name")
	require(cfg.Backup.Mode != "", "backup.mode")
	require(len(cfg.Backup.WatchDirectories) > 0, "backup.watch_directories")
	require(strings.TrimSpace(cfg.Server.Address) != "", "server.address")
	require(cfg.Server.AuthToken.IsSet(), "server.auth_token")

	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	for i, dir := range cfg.Backup.WatchDirectories {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("backup.watch_directories[%d] is empty", i)
		}
	}

	if err := checkMax("backup.interval_seconds", cfg.Backup.IntervalSeconds, maxSeconds); err != nil {
		return err
	}
	if adv := cfg.Advanced; adv != nil {
		if err := checkMax("advanced.retry_delay_seconds", adv.RetryDelaySeconds, maxSeconds); err != nil {
			return err
		}
		if err := checkMax("advanced.max_file_size_mb", adv.MaxFileSizeMB, maxFileSizeMB); err != nil {
			return err
		}
	}
	return nil
}

func checkMax(field string, v *Uint64, limit uint64) error {
	if v != nil && uint64(*v) > limit {
		return fmt.Errorf("%s must not exceed %d", field, limit)
	}
	return nil
}
