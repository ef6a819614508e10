package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// supportedLanguages are the language codes that speech output can map to a voice.
var supportedLanguages = map[string]bool{
	"en": true,
	"ko": true,
	"ja": true,
	"zh": true,
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
	if err := validate.RegisterValidation("language", isSupportedLanguage); err != nil {
		return nil, nil, fmt.Errorf("failed to register language validation: %w", err)
	}
	if err := validate.RegisterTranslation("language", trans, func(ut ut.Translator) error {
		return ut.Add("language", "{0} must be one of en, ko, ja, zh", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("language", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register language translation: %w", err)
	}

	if err := validate.RegisterValidation("location", isLoadableLocation); err != nil {
		return nil, nil, fmt.Errorf("failed to register location validation: %w", err)
	}
	if err := validate.RegisterTranslation("location", trans, func(ut ut.Translator) error {
		return ut.Add("location", "{0} must be a time zone name such as Local, UTC or Asia/Tokyo", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("location", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register location translation: %w", err)
	}

	return validate, trans, nil
}

func isSupportedLanguage(fl validator.FieldLevel) bool {
	return supportedLanguages[strings.ToLower(fl.Field().String())]
}

// isLoadableLocation accepts every name time.LoadLocation does, including Local and UTC.
func isLoadableLocation(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
