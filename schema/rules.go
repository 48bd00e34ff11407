// Package schema declares the validation rules for every signup field as
// ordered predicate and message pairs.
package schema

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Env carries the values a rule may depend on besides the field value.
type Env struct {
	Now time.Time
}

// Rule is a single predicate with the message reported when it fails.
type Rule struct {
	Check   func(v string, env Env) bool
	Message string
}

// BoolRule is the boolean-field counterpart of Rule.
type BoolRule struct {
	Check   func(v bool) bool
	Message string
}

// MinLen fails when v has fewer than n characters.
func MinLen(n int, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return utf8.RuneCountInString(v) >= n
	}}
}

// MaxLen fails when v has more than n characters.
func MaxLen(n int, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return utf8.RuneCountInString(v) <= n
	}}
}

// Matches fails when v does not match re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return re.MatchString(v)
	}}
}

// Required fails on the empty string.
func Required(msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return v != ""
	}}
}

// OneOf fails unless v is one of the allowed values.
func OneOf(allowed []string, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}}
}

// ContainsAny fails unless v contains at least one rune from chars.
func ContainsAny(chars, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return strings.ContainsAny(v, chars)
	}}
}

// OptionalMatches passes on the empty string and otherwise behaves like Matches.
func OptionalMatches(re *regexp.Regexp, msg string) Rule {
	return Rule{Message: msg, Check: func(v string, _ Env) bool {
		return v == "" || re.MatchString(v)
	}}
}

// MustBeTrue fails on false.
func MustBeTrue(msg string) BoolRule {
	return BoolRule{Message: msg, Check: func(v bool) bool { return v }}
}
