// Package validation checks request payloads and renders failures as
// field-keyed Portuguese messages (items.0.close_time style keys).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Errors is a validation failure keyed by field path. Message is the first
// message added.
type Errors struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *Errors) Error() string {
	return e.Message
}

// Add appends msg to the messages of field.
func (e *Errors) Add(field, msg string) *Errors {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	if e.Message == "" {
		e.Message = msg
	}
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

func (e *Errors) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e as an error, or nil when nothing was added.
func (e *Errors) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

// Single builds an Errors with one message on one field.
func Single(field, msg string) *Errors {
	return (&Errors{}).Add(field, msg)
}

// IsHHMM reports whether s is a zero-padded 24h HH:mm time.
func IsHHMM(s string) bool {
	return hhmmPattern.MatchString(s)
}

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return IsHHMM(fl.Field().String())
		})
		_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
			f := fl.Field()
			if f.Kind() == reflect.String {
				return strings.TrimSpace(f.String()) != ""
			}
			return !f.IsZero()
		})
		registerOptional[string](v)
		registerOptional[float64](v)
		instance = v
	})
	return instance
}

// registerOptional makes tags on a dto.Optional[T] apply to the sent value.
// Missing and null keys validate as a nil pointer, so omitnil skips them.
func registerOptional[T any](v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[T]); ok {
			return o.Ptr()
		}
		return nil
	}, dto.Optional[T]{})
}

type nullReporter interface {
	NulledRequired() []string
}

// Patch validates a partial update. Required keys sent as null are rejected
// before the tags of the present keys are checked.
func Patch(p nullReporter) error {
	out := &Errors{}
	for _, key := range p.NulledRequired() {
		out.Add(key, requiredMessage(key))
	}

	err := Struct(p)
	var tagErrs *Errors
	if errors.As(err, &tagErrs) {
		for _, key := range sortedKeys(tagErrs.Fields) {
			for _, msg := range tagErrs.Fields[key] {
				out.Add(key, msg)
			}
		}
	} else if err != nil {
		return err
	}
	return out.OrNil()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func requiredMessage(field string) string {
	return fmt.Sprintf("O campo %s é obrigatório.", strings.ReplaceAll(field, "_", " "))
}

// Struct validates s and returns *Errors on failure.
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Errors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), message(fe))
	}
	return out
}

// fieldPath turns "Req.items[0].close_time" into "items.0.close_time".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

// overrides are fixed messages for a field regardless of the failed rule.
var overrides = map[string]string{
	"items":       "Envie a lista de horários.",
	"day_of_week": "Dia da semana inválido.",
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if msg, ok := overrides[field]; ok {
		return msg
	}

	label := strings.ReplaceAll(field, "_", " ")
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return requiredMessage(field)
	case "filled":
		return fmt.Sprintf("O campo %s não pode estar vazio.", label)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um endereço de e-mail válido.", label)
	case "oneof":
		return fmt.Sprintf("O campo %s selecionado é inválido.", label)
	case "hhmm":
		return fmt.Sprintf("%s deve estar no formato HH:mm.", field)
	case "datetime":
		return fmt.Sprintf("O campo %s não é uma data válida.", label)
	case "len":
		return fmt.Sprintf("O campo %s deve ter %s caracteres.", label, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("O campo %s não pode ter mais de %s caracteres.", label, fe.Param())
		}
		return fmt.Sprintf("O campo %s não pode ser maior que %s.", label, fe.Param())
	case "min":
		if isText {
			return fmt.Sprintf("O campo %s deve ter pelo menos %s caracteres.", label, fe.Param())
		}
		return fmt.Sprintf("O campo %s deve ser pelo menos %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("O campo %s deve ser maior ou igual a %s.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("O campo %s deve ser menor ou igual a %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("O campo %s deve ser maior que %s.", label, fe.Param())
	default:
		return fmt.Sprintf("O campo %s é inválido.", label)
	}
}
