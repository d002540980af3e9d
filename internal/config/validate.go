package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"

	elerrors "github.com/go-drift/elements/pkg/errors"
)

// SupportedMajor is the only theme file major version understood.
const SupportedMajor = "v1"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	tokenPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("token", func(fl validator.FieldLevel) bool {
			return tokenPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("themeversion", func(fl validator.FieldLevel) bool {
			return semver.Major(canonicalVersion(fl.Field().String())) == SupportedMajor
		})

		validateInst = v
	})

	return validateInst
}

// canonicalVersion accepts versions with or without the leading "v".
func canonicalVersion(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	return version
}

// Validate checks a parsed theme file. Failures are reported as an
// *errors.ElementError of kind KindConfig naming every offending field.
func Validate(f *File) error {
	if f == nil {
		return configError(errors.New("theme is nil"))
	}
	err := validatorInstance().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return configError(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return configError(errors.New(strings.Join(msgs, "; ")))
}

func configError(err error) error {
	return &elerrors.ElementError{
		Op:   "config.Validate",
		Kind: elerrors.KindConfig,
		Err:  err,
	}
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.StructNamespace())
	field = strings.TrimPrefix(field, "file.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "themeversion":
		return fmt.Sprintf("%s \"%v\" is not a %s semantic version", field, fe.Value(), SupportedMajor)
	case "token":
		return fmt.Sprintf("%s \"%v\" must be lowercase letters, digits and hyphens", field, fe.Value())
	case "unique":
		return fmt.Sprintf("%s contains duplicates", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
