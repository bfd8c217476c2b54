package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// errNoFolders is returned when no folder is left to serve.
var errNoFolders = errors.New("folders: at least one folder must be configured")

// validate is the singleton validator instance
var validate = validator.New()

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	if len(cfg.Folders) == 0 {
		return errNoFolders
	}

	aliases := make(map[string]bool)
	for i, f := range cfg.Folders {
		if aliases[f.Alias] {
			return fmt.Errorf("folders[%d]: duplicate alias %q", i, f.Alias)
		}
		aliases[f.Alias] = true
	}

	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
