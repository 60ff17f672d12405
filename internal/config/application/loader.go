package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"historian/internal/config/domain"
	"historian/internal/shared/validation"
)

// LoadStatisticsConfig parses a YAML statistics config. Missing keys keep
// their defaults; unknown keys are rejected.
func LoadStatisticsConfig(ctx context.Context, raw []byte) (domain.StatisticsConfig, error) {
	cfg := domain.DefaultStatisticsConfig()

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.StatisticsConfig{}, fmt.Errorf("failed to parse statistics config: %w", err)
	}

	if err := validation.Check(ctx, &cfg, "statistics"); err != nil {
		return domain.StatisticsConfig{}, err
	}

	return cfg, nil
}

// LoadStatisticsFile reads the statistics config at path. An empty path
// yields the defaults.
func LoadStatisticsFile(ctx context.Context, path string) (domain.StatisticsConfig, error) {
	if path == "" {
		return domain.DefaultStatisticsConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.StatisticsConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := LoadStatisticsConfig(ctx, raw)
	var valErr *validation.ValidationError
	if errors.As(err, &valErr) {
		valErr.PrependPath(path)
	}
	return cfg, err
}
