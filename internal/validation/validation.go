// Package validation configures gin's request validator and turns
// validation failures into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StrongPasswordTag requires an uppercase letter and a special character
const StrongPasswordTag = "strongpassword"

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var registerOnce sync.Once

// Register installs the custom rules on gin's validator and reports
// fields by their JSON names. It is safe to call more than once and
// panics if a rule cannot be installed.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin validator engine is not go-playground/validator")
		}
		if err := install(v); err != nil {
			panic(err.Error())
		}
	})
}

func install(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return addRule(v, StrongPasswordTag, strongPassword)
}

func addRule(v *validator.Validate, tag string, fn validator.Func) error {
	if err := v.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("validation: failed to register %q rule: %w", tag, err)
	}
	return nil
}

// ValidateStruct runs gin's validator against obj
func ValidateStruct(obj interface{}) error {
	Register()
	return binding.Validator.ValidateStruct(obj)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func strongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword reports whether s has at least one uppercase letter and
// one of !@#$%^&*(),.?":{}|<>
func IsStrongPassword(s string) bool {
	var upper, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecialChars, r):
			special = true
		}
	}
	return upper && special
}

// Messages maps each failed rule to a message. messages is keyed by
// "<json field>.<tag>" with "<json field>" as a per-field fallback.
func Messages(err error, messages map[string]string) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"}
	}

	out := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg, ok = messages[fe.Field()]
		}
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}
	return out
}
