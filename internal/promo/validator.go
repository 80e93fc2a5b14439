package promo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fernwear/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator over one or more loaded code lists.
// Code sets are read-only after initialization, so lookups need no locking.
type validator struct {
	codeSets []CodeSet
	minMatch int
	logger   zerolog.Logger
}

// ValidatorConfig holds configuration for the promo validator.
type ValidatorConfig struct {
	// FilePaths is the list of promo list paths (or S3 keys) to load.
	FilePaths []string

	// MinMatchCount is the minimum number of lists a code must appear in.
	// Default: 1
	MinMatchCount int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths: []string{
			"data/promo/freeship1.gz",
			"data/promo/freeship2.gz",
		},
		MinMatchCount: 1,
	}
}

// NewValidator creates a new promo validator. All code lists are loaded
// concurrently at initialization time; any load failure aborts startup.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}
	if config.MinMatchCount < 1 {
		config.MinMatchCount = 1
	}

	logger = logger.With().Str("component", "promo-validator").Logger()

	logger.Info().
		Int("list_count", len(config.FilePaths)).
		Int("min_match_count", config.MinMatchCount).
		Msg("initialising promo validator")

	v := &validator{
		codeSets: make([]CodeSet, 0, len(config.FilePaths)),
		minMatch: config.MinMatchCount,
		logger:   logger,
	}

	type loadResult struct {
		index int
		set   CodeSet
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, path := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			set, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				set:   set,
				err:   err,
			}
		}(i, path)
	}

	wg.Wait()
	close(resultChan)

	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load promo list")
			return nil, fmt.Errorf("failed to load promo list %s: %w", config.FilePaths[i], result.err)
		}
		v.codeSets = append(v.codeSets, result.set)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.set.Size()).
			Msg("promo list loaded")
	}

	return v, nil
}

// Validate checks if a promo code grants free shipping. Codes are matched
// case-insensitively against the loaded lists.
func (v *validator) Validate(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.ErrInvalidPromoCode
	}

	matches := 0
	for _, set := range v.codeSets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if set.Contains(code) {
			matches++
			if matches >= v.minMatch {
				v.logger.Debug().
					Str("promo_code", code).
					Int("match_count", matches).
					Msg("promo code validated")
				return nil
			}
		}
	}

	v.logger.Debug().
		Str("promo_code", code).
		Int("match_count", matches).
		Msg("promo code not found in sufficient lists")
	return model.ErrInvalidPromoCode
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.codeSets = nil
	v.logger.Info().Msg("promo validator closed")
	return nil
}

// disabledValidator rejects every code. Used when no promo lists are
// configured so that submitted codes fail closed.
type disabledValidator struct{}

// NewDisabledValidator creates a validator that rejects all codes.
func NewDisabledValidator() Validator {
	return disabledValidator{}
}

func (disabledValidator) Validate(_ context.Context, _ string) error {
	return model.ErrInvalidPromoCode
}

func (disabledValidator) Close() error {
	return nil
}
