package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validate checks the loaded configuration and reports every invalid field.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	err = validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate.Struct() > %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("csvfile", isCSVFilePath); err != nil {
		return nil, nil, fmt.Errorf("failed to register csvfile validation: %w", err)
	}
	if err := validate.RegisterTranslation("csvfile", trans, func(ut ut.Translator) error {
		return ut.Add("csvfile", "{0} must be a path to a .csv file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("csvfile", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register csvfile translation: %w", err)
	}

	return validate, trans, nil
}

// isCSVFilePath accepts paths with a .csv extension that do not point at a directory name.
func isCSVFilePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" || strings.HasSuffix(path, "/") {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
