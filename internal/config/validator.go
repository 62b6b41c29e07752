package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the cross-field rules the tags
// cannot express. Every violation is reported, not just the first.
func Validate(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}

	for i := 1; i < len(cfg.ResolverTierLevels); i++ {
		if cfg.ResolverTierLevels[i] < cfg.ResolverTierLevels[i-1] {
			problems = append(problems, ErrMsgTierLevelsNotAscending)
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Warnings returns non-fatal issues such as example secrets left in place
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, WarnExampleDBPassword)
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, WarnExampleAPIKey)
	}
	if c.IsProduction() && c.StoreDriver == StoreDriverMemory {
		warnings = append(warnings, WarnMemoryStoreInProduction)
	}
	if c.StoreDriver == StoreDriverNone {
		warnings = append(warnings, WarnNoStore)
	}

	return warnings
}
