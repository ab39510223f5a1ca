package config

import (
	stderrors "errors"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks struct constraints and the names that tags cannot express.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Layout.Strategy != "" {
		if _, err := layout.Preset(c.Layout.Strategy); err != nil {
			return err
		}
	}
	if c.Levels.Split && c.Levels.SplitUpper <= c.Levels.SplitLower {
		return errors.New(errors.ErrCodeInvalidConfig,
			"levels.split_upper (%d) must exceed levels.split_lower (%d)", c.Levels.SplitUpper, c.Levels.SplitLower)
	}
	return nil
}

// formatValidationError reports the first failed constraint by its
// namespaced field, e.g. Config.Cache.RedisURL.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "gte", "min":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "lte", "max":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must not exceed %s", field, e.Param())
	case "len":
		return errors.New(errors.ErrCodeInvalidConfig, "%s: must have exactly %s entries", field, e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}
