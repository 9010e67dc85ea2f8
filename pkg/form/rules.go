package form

import (
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule checks one field value and returns a human readable message, or "" when valid.
// Rules are pure.
type Rule func(value string) string

// Rules maps a field name to its rule. A field without a rule is always valid.
type Rules map[string]Rule

// Check runs every rule against values and returns the failures keyed by field
func (r Rules) Check(values map[string]string) map[string]string {
	errs := map[string]string{}
	for field, rule := range r {
		if rule == nil {
			continue
		}
		if msg := rule(values[field]); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// Fields returns the names of the fields that carry a rule, sorted
func (r Rules) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Required rejects the empty string
func Required(msg string) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return msg
		}
		return ""
	}
}

// IntRange rejects an empty value with requiredMsg, and a non-integer or out of
// [min, max] value with rangeMsg. Both bounds are inclusive.
func IntRange(min, max int, requiredMsg, rangeMsg string) Rule {
	return func(value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return requiredMsg
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < min || n > max {
			return rangeMsg
		}
		return ""
	}
}

// Integer rejects an empty value with requiredMsg and a non-integer value with msg
func Integer(requiredMsg, msg string) Rule {
	return func(value string) string {
		value = strings.TrimSpace(value)
		if value == "" {
			return requiredMsg
		}
		if _, err := strconv.Atoi(value); err != nil {
			return msg
		}
		return ""
	}
}

// MinLength rejects values shorter than n characters
func MinLength(n int, msg string) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
			return msg
		}
		return ""
	}
}

// Email rejects anything that is not a bare address such as "a@example.com"
func Email(msg string) Rule {
	return func(value string) string {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
			return msg
		}
		return ""
	}
}

// OneOf rejects values outside allowed
func OneOf(allowed []string, msg string) Rule {
	return func(value string) string {
		if !slices.Contains(allowed, value) {
			return msg
		}
		return ""
	}
}

// Date rejects values that do not parse with layout
func Date(layout, msg string) Rule {
	return func(value string) string {
		if _, err := time.Parse(layout, value); err != nil {
			return msg
		}
		return ""
	}
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// HexColor rejects values that are not "#rrggbb"
func HexColor(msg string) Rule {
	return func(value string) string {
		if !hexColorPattern.MatchString(value) {
			return msg
		}
		return ""
	}
}

// NonEmptyList rejects a comma separated list without any item
func NonEmptyList(msg string) Rule {
	return func(value string) string {
		if len(SplitList(value)) == 0 {
			return msg
		}
		return ""
	}
}

// Optional applies rule only to non-empty values
func Optional(rule Rule) Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		return rule(value)
	}
}

// Chain applies rules in order and returns the first failure
func Chain(rules ...Rule) Rule {
	return func(value string) string {
		for _, rule := range rules {
			if msg := rule(value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// SplitList splits a comma separated field value, trimming blanks and dropping empty items
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinList is the inverse of SplitList
func JoinList(items []string) string {
	return strings.Join(items, ",")
}
