package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"

	"github.com/julianstephens/aidant/internal/utils"
)

var (
	// custom validation tags & texts
	hhmmTag  = "hhmm"
	hhmmText = "{0} doit être une heure au format HH:MM"
	dateTag  = "date"
	dateText = "{0} doit être une date au format AAAA-MM-JJ"
	jourTag  = "jour"
	jourText = "{0} doit être un jour de la semaine (lundi ... dimanche)"

	requiredTag  = "required"
	requiredText = "{0} est obligatoire"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		locale := fr.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("fr")
		_ = fr_translations.RegisterDefaultTranslations(validate, translator)

		// Use JSON tag names for errors instead of Go struct names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation(hhmmTag, func(fl validator.FieldLevel) bool {
			return utils.ValidateTimeFormat(fl.Field().String())
		})
		_ = validate.RegisterValidation(dateTag, func(fl validator.FieldLevel) bool {
			return utils.ValidateDateFormat(fl.Field().String())
		})
		_ = validate.RegisterValidation(jourTag, func(fl validator.FieldLevel) bool {
			return utils.IsWeekday(fl.Field().String())
		})

		registerTranslation(hhmmTag, hhmmText, false)
		registerTranslation(dateTag, dateText, false)
		registerTranslation(jourTag, jourText, false)
		registerTranslation(requiredTag, requiredText, true)
	})
	return validate, translator
}

func registerTranslation(tag, text string, override bool) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// FieldError is one invalid field with its French message.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is returned by Struct when at least one field is invalid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, " ; ")
}

// Get returns the message for a field path such as "adresse.codePostal".
func (fe FieldErrors) Get(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	val, trans := instance()
	err := val.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: fieldPath(e.Namespace()), Message: e.Translate(trans)})
	}
	return out
}

// Var validates a single value, e.g. Var(email, "required,email").
func Var(field string, value any, tag string) error {
	val, trans := instance()
	err := val.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, e := range verrs {
		msg := strings.TrimSpace(e.Translate(trans))
		out = append(out, FieldError{Field: field, Message: field + " " + msg})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// NormalizeSlot pads user-typed times such as "9:30" to HH:MM, then checks the range.
func NormalizeSlot(start, end string) (string, string, error) {
	s, err := utils.NormalizeTime(start)
	if err != nil {
		return "", "", fmt.Errorf("heure de début invalide %q (format HH:MM)", start)
	}
	e, err := utils.NormalizeTime(end)
	if err != nil {
		return "", "", fmt.Errorf("heure de fin invalide %q (format HH:MM)", end)
	}
	if err := ValidateSlot(s, e); err != nil {
		return "", "", err
	}
	return s, e, nil
}

// ValidateSlot checks two HH:MM times and that the range is not empty.
func ValidateSlot(start, end string) error {
	if !utils.ValidateTimeFormat(start) {
		return fmt.Errorf("heure de début invalide %q (format HH:MM)", start)
	}
	if !utils.ValidateTimeFormat(end) {
		return fmt.Errorf("heure de fin invalide %q (format HH:MM)", end)
	}
	if _, err := utils.DurationMinutes(start, end); err != nil {
		return errors.New("l'heure de fin doit être après l'heure de début")
	}
	return nil
}
