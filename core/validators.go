package core

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	emailTag   = "school_email"
	emailText  = "invalid email format"
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`)

	idTag  = "school_id"
	idText = "only alphanumeric characters are allowed"

	requiredTag  = "required"
	requiredText = "this field is required"

	ageTag  = "school_age"
	ageText = "age must be between 0 and 120"

	minAge, maxAge = 0, 120
)

// Instantiate the validator for use.
func init() {
	Validate = validator.New()

	// Register the english error messages for validation errors.
	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(notBlankTag, notBlankText)

	_ = Validate.RegisterValidation(emailTag, emailValidation)
	RegisterCustomTranslation(emailTag, emailText)

	_ = Validate.RegisterValidation(idTag, idValidation)
	RegisterCustomTranslation(idTag, idText)

	_ = Validate.RegisterValidation(ageTag, ageValidation)
	RegisterCustomTranslation(ageTag, ageText)

	RegisterCustomTranslation(requiredTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateStruct runs the struct validation and converts failures into a *ValidationError.
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]*InvalidFieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		flds = append(flds, &InvalidFieldError{Field: fe.Field(), Reason: fe.Translate(Translator)})
	}
	return NewValidationError(flds...)
}

// ValidateEmail reports whether s looks like local-part@domain.tld.
func ValidateEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// ValidateAge reports whether n is between 0 and 120 inclusive.
func ValidateAge(n int) bool {
	return minAge <= n && n <= maxAge
}

// ValidateID reports whether s is a non-empty run of letters and numbers (Unicode N*, so "½" and "Ⅻ" pass).
func ValidateID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func emailValidation(fl validator.FieldLevel) bool {
	return ValidateEmail(fl.Field().String())
}

func ageValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := fl.Field().Int()
		return int64(minAge) <= n && n <= int64(maxAge)
	default:
		return false
	}
}

func idValidation(fl validator.FieldLevel) bool {
	return ValidateID(fl.Field().String())
}
