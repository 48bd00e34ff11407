package schema

import (
	"strings"
	"testing"
	"time"

	"github.com/jskinn96/signup/form"
)

var testEnv = Env{Now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

func TestFieldRules(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		field form.Field
		value any
		want  string // empty means valid
	}{
		{form.Username, "ab", "username must be 3 or more characters"},
		{form.Username, "abc_123", ""},
		{form.Username, strings.Repeat("a", 21), "username must be 20 or fewer characters"},
		{form.Username, "abc-123", "username may only contain letters, numbers, and _"},

		{form.Password, "abc123!", "password must be 8 or more characters"},
		{form.Password, strings.Repeat("a1!", 17), "password must be 50 or fewer characters"},
		{form.Password, "abcdefgh!", "password must contain both letters and numbers"},
		{form.Password, "12345678!", "password must contain both letters and numbers"},
		{form.Password, "abc12345", "password must contain a special character (!@#$%^&*)"},
		{form.Password, "abc12345!", ""},

		{form.Email, "a@b.co", ""},
		{form.Email, "first.last+tag@mail.example.com", ""},
		{form.Email, "not-an-email", "invalid email address"},
		{form.Email, ".a@b.co", "invalid email address"},
		{form.Email, "a..b@b.co", "invalid email address"},
		{form.Email, "a@b.c", "invalid email address"},

		{form.Phone, "010-1234-5678", ""},
		{form.Phone, "011-1234-5678", "phone must match 010-0000-0000"},
		{form.Phone, "01012345678", "phone must match 010-0000-0000"},

		{form.BirthDate, "", "select your date of birth"},
		{form.BirthDate, "01/02/2000", "enter a date as YYYY-MM-DD"},
		{form.BirthDate, "2000-13-40", "enter a date as YYYY-MM-DD"},
		{form.BirthDate, "2012-01-01", MsgAgeRange},
		{form.BirthDate, "2011-12-31", ""},
		{form.BirthDate, "1900-01-01", MsgAgeRange},
		{form.BirthDate, "1905-01-01", ""},

		{form.Gender, "", "select your gender"},
		{form.Gender, "robot", "select your gender"},
		{form.Gender, form.GenderOther, ""},

		{form.Nickname, "a", "nickname must be 2 or more characters"},
		{form.Nickname, "닉네", ""},
		{form.Nickname, strings.Repeat("가", 16), "nickname must be 15 or fewer characters"},
		{form.Nickname, "nick name", "nickname may only contain Hangul, letters, numbers, and _"},
		{form.Nickname, "ニック", "nickname may only contain Hangul, letters, numbers, and _"},

		{form.Interests, "", ""},
		{form.Interests, "anything at all!", ""},

		{form.Facebook, "", ""},
		{form.Facebook, "john.doe_1", ""},
		{form.Facebook, "john doe", "enter a valid Facebook handle"},
		{form.Instagram, "insta-gram", "enter a valid Instagram handle"},
		{form.GitHub, "octo-cat", ""},
		{form.GitHub, "octo_cat", "enter a valid GitHub handle"},

		{form.AgreeTerms, false, MsgAgreeTerms},
		{form.AgreeTerms, true, ""},
		{form.AgreeTerms, "true", InvalidValueMessage},
		{form.AgreeMarketing, false, ""},
		{form.Username, 42, InvalidValueMessage},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			msg, ok := reg.MustLookup(tt.field).Validate(tt.value, testEnv)
			if tt.want == "" {
				if !ok {
					t.Errorf("%v: unexpected failure %q", tt.value, msg)
				}
				return
			}
			if ok {
				t.Fatalf("%v: expected %q, got valid", tt.value, tt.want)
			}
			if msg != tt.want {
				t.Errorf("%v: message = %q, want %q", tt.value, msg, tt.want)
			}
		})
	}
}

func TestEveryFieldHasSchema(t *testing.T) {
	reg := NewRegistry()
	for _, f := range form.AllFields {
		if _, ok := reg.Lookup(f); !ok {
			t.Errorf("no schema for %s", f)
		}
	}
	if _, ok := reg.Lookup(form.Field("zip")); ok {
		t.Error("unknown field has a schema")
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup did not panic for an unknown field")
		}
	}()
	NewRegistry().MustLookup(form.Field("zip"))
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"0", "0"},
		{"010", "010"},
		{"0101", "010-1"},
		{"0101234", "010-1234"},
		{"01012345", "010-1234-5"},
		{"01012345678", "010-1234-5678"},
		{"010-1234-5678", "010-1234-5678"},
		{"010 1234 5678", "010-1234-5678"},
		{"(010)12345678", "010-1234-5678"},
		{"0101234567890", "010-1234-567890"},
	}
	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	age, ok := Age("2000-12-31", testEnv.Now)
	if !ok || age != 25 {
		t.Errorf("Age = %d, %v; want 25, true", age, ok)
	}
	if _, ok := Age("yesterday", testEnv.Now); ok {
		t.Error("Age accepted an unparsable date")
	}
}
