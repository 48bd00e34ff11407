package schema

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/jskinn96/signup/form"
)

// Kind is the value type a field accepts.
type Kind int

const (
	KindText Kind = iota
	KindBool
)

// InvalidValueMessage is reported when a value has the wrong type for its field.
const InvalidValueMessage = "invalid value"

// Age bounds for sign up, inclusive.
const (
	MinAge = 14
	MaxAge = 120
)

// PasswordSpecials is the set of special characters a password must draw from.
const PasswordSpecials = "!@#$%^&*"

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

// Messages shared between field rules and step refinements.
const (
	MsgAgeRange   = "you must be between 14 and 120 years old"
	MsgAgreeTerms = "you must agree to the terms of service"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`\d`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^010-\d{4}-\d{4}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	socialPattern   = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)
	githubPattern   = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// FieldSchema is the ordered rule chain for one field.
type FieldSchema struct {
	Field     form.Field
	Label     string
	Kind      Kind
	Optional  bool
	Rules     []Rule
	BoolRules []BoolRule
	// Normalize rewrites a text value before it is stored and validated.
	Normalize func(string) string
}

// Validate runs the rule chain against v and returns the first failing
// message. ok is true when every rule passes.
func (s FieldSchema) Validate(v any, env Env) (msg string, ok bool) {
	switch s.Kind {
	case KindBool:
		b, isBool := v.(bool)
		if !isBool {
			return InvalidValueMessage, false
		}
		for _, r := range s.BoolRules {
			if !r.Check(b) {
				return r.Message, false
			}
		}
		return "", true
	default:
		str, isText := asText(v)
		if !isText {
			return InvalidValueMessage, false
		}
		for _, r := range s.Rules {
			if !r.Check(str, env) {
				return r.Message, false
			}
		}
		return "", true
	}
}

func asText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case form.GenderValue:
		return string(val), true
	}
	return "", false
}

// Registry holds the schema of every field. It is immutable once built.
type Registry struct {
	fields map[form.Field]FieldSchema
}

// NewRegistry builds the registry with the signup rules.
func NewRegistry() *Registry {
	r := &Registry{fields: make(map[form.Field]FieldSchema)}
	for _, s := range defaultSchemas() {
		r.fields[s.Field] = s
	}
	return r
}

// Lookup returns the schema for f.
func (r *Registry) Lookup(f form.Field) (FieldSchema, bool) {
	s, ok := r.fields[f]
	return s, ok
}

// MustLookup is Lookup for fields known at compile time.
func (r *Registry) MustLookup(f form.Field) FieldSchema {
	s, ok := r.fields[f]
	if !ok {
		panic(fmt.Sprintf("schema: no schema for field %q", f))
	}
	return s
}

func defaultSchemas() []FieldSchema {
	genders := make([]string, 0, 3)
	for _, g := range form.GenderOptions() {
		genders = append(genders, string(g.Value))
	}

	return []FieldSchema{
		{
			Field: form.Username, Label: "Username", Kind: KindText,
			Rules: []Rule{
				MinLen(3, "username must be 3 or more characters"),
				MaxLen(20, "username must be 20 or fewer characters"),
				Matches(usernamePattern, "username may only contain letters, numbers, and _"),
			},
		},
		{
			Field: form.Password, Label: "Password", Kind: KindText,
			Rules: []Rule{
				MinLen(8, "password must be 8 or more characters"),
				MaxLen(50, "password must be 50 or fewer characters"),
				{Message: "password must contain both letters and numbers", Check: func(v string, _ Env) bool {
					return letterPattern.MatchString(v) && digitPattern.MatchString(v)
				}},
				ContainsAny(PasswordSpecials, "password must contain a special character (!@#$%^&*)"),
			},
		},
		{
			Field: form.Email, Label: "Email", Kind: KindText,
			Rules: []Rule{
				{Message: "invalid email address", Check: func(v string, _ Env) bool { return IsEmail(v) }},
			},
		},
		{
			Field: form.Phone, Label: "Phone", Kind: KindText,
			Rules: []Rule{
				Matches(phonePattern, "phone must match 010-0000-0000"),
			},
			Normalize: FormatPhone,
		},
		{
			Field: form.BirthDate, Label: "Date of birth", Kind: KindText,
			Rules: []Rule{
				Required("select your date of birth"),
				{Message: "enter a date as YYYY-MM-DD", Check: func(v string, _ Env) bool {
					_, ok := parseBirthDate(v)
					return ok
				}},
				{Message: MsgAgeRange, Check: AgeInRange},
			},
		},
		{
			Field: form.Gender, Label: "Gender", Kind: KindText,
			Rules: []Rule{
				OneOf(genders, "select your gender"),
			},
		},
		{
			Field: form.Nickname, Label: "Nickname", Kind: KindText,
			Rules: []Rule{
				MinLen(2, "nickname must be 2 or more characters"),
				MaxLen(15, "nickname must be 15 or fewer characters"),
				{Message: "nickname may only contain Hangul, letters, numbers, and _", Check: func(v string, _ Env) bool {
					return isNickname(v)
				}},
			},
		},
		{Field: form.Interests, Label: "Interests", Kind: KindText, Optional: true},
		{
			Field: form.Facebook, Label: "Facebook", Kind: KindText, Optional: true,
			Rules: []Rule{OptionalMatches(socialPattern, "enter a valid Facebook handle")},
		},
		{
			Field: form.Instagram, Label: "Instagram", Kind: KindText, Optional: true,
			Rules: []Rule{OptionalMatches(socialPattern, "enter a valid Instagram handle")},
		},
		{
			Field: form.GitHub, Label: "GitHub", Kind: KindText, Optional: true,
			Rules: []Rule{OptionalMatches(githubPattern, "enter a valid GitHub handle")},
		},
		{
			Field: form.AgreeTerms, Label: "Terms of service", Kind: KindBool,
			BoolRules: []BoolRule{MustBeTrue(MsgAgreeTerms)},
		},
		{Field: form.AgreeMarketing, Label: "Marketing", Kind: KindBool, Optional: true},
	}
}

// IsEmail reports whether v has an address shape: a local part that neither
// starts with a dot nor contains "..", and a dotted domain ending in a
// top-level label of at least two letters.
func IsEmail(v string) bool {
	if strings.HasPrefix(v, ".") || strings.Contains(v, "..") {
		return false
	}
	return emailPattern.MatchString(v)
}

// FormatPhone strips non-digits and inserts dashes as 3-4-rest, so
// "01012345678" becomes "010-1234-5678". Already formatted input is returned
// unchanged.
func FormatPhone(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()

	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 7:
		return d[:3] + "-" + d[3:]
	default:
		return d[:3] + "-" + d[3:7] + "-" + d[7:]
	}
}

// Age returns now's year minus the birth year of v.
func Age(v string, now time.Time) (int, bool) {
	t, ok := parseBirthDate(v)
	if !ok {
		return 0, false
	}
	return now.Year() - t.Year(), true
}

// AgeInRange reports whether the age derived from v lies in [MinAge, MaxAge].
func AgeInRange(v string, env Env) bool {
	age, ok := Age(v, env.Now)
	if !ok {
		return false
	}
	return age >= MinAge && age <= MaxAge
}

func parseBirthDate(v string) (time.Time, bool) {
	if !datePattern.MatchString(v) {
		return time.Time{}, false
	}
	t, err := time.Parse(BirthDateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func isNickname(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		switch {
		case r == '_':
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		case r >= 0xAC00 && r <= 0xD7A3:
		default:
			return false
		}
	}
	return true
}
