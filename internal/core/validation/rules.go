// Package validation evaluates ordered field rules and reports the first
// violation, matching the admin API's "one message per response" contract.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/admin-auth/internal/core/domain"
)

// Kind identifies a rule variant.
type Kind int

const (
	KindRequired Kind = iota
	KindEmail
	KindMinLength
)

// Rule is a single check applied to a field value.
type Rule struct {
	Kind Kind
	// Min is the minimum length in runes for KindMinLength.
	Min int
}

func Required() Rule { return Rule{Kind: KindRequired} }
func Email() Rule { return Rule{Kind: KindEmail} }
func MinLength(n int) Rule { return Rule{Kind: KindMinLength, Min: n} }

// Field pairs a named value with the rules it must satisfy.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// emailPattern accepts anything shaped like local@domain.tld with no
// whitespace and a single "@" per part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const emailTag = "admin_email"

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks fields in order, and each field's rules in order, and
// returns a *domain.ValidationError for the first rule that fails.
// Email and MinLength are only evaluated on non-empty values.
func Validate(fields ...Field) error {
	for _, f := range fields {
		for _, r := range f.Rules {
			if msg, ok := r.check(f.Name, f.Value); !ok {
				return &domain.ValidationError{Message: msg}
			}
		}
	}
	return nil
}

func (r Rule) check(name, value string) (string, bool) {
	switch r.Kind {
	case KindRequired:
		if value == "" {
			return name + " is required", false
		}
	case KindEmail:
		if value != "" && validate.Var(value, emailTag) != nil {
			return name + " must be a valid email", false
		}
	case KindMinLength:
		if value != "" && utf8.RuneCountInString(value) < r.Min {
			return fmt.Sprintf("%s must be at least %d characters long", name, r.Min), false
		}
	}
	return "", true
}

// ParseRules converts a pipe-separated rule string such as
// "required|minLength:6" into rules.
func ParseRules(expr string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(expr, "|") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case part == "required":
			rules = append(rules, Required())
		case part == "email":
			rules = append(rules, Email())
		case strings.HasPrefix(part, "minLength:"):
			n, err := strconv.Atoi(strings.TrimPrefix(part, "minLength:"))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("validation: invalid rule %q", part)
			}
			rules = append(rules, MinLength(n))
		default:
			return nil, fmt.Errorf("validation: unknown rule %q", part)
		}
	}
	return rules, nil
}

// MustParseRules is like ParseRules but panics on a malformed rule string.
func MustParseRules(expr string) []Rule {
	rules, err := ParseRules(expr)
	if err != nil {
		panic(err)
	}
	return rules
}
