package form

import (
	"reflect"
	"testing"
)

func TestErrorMapOrder(t *testing.T) {
	m := NewErrorMap()
	m.Set(Username, "a")
	m.Set(Email, "b")
	m.Set(Phone, "c")

	m.Set(Username, "a2")
	if got := m.Fields(); !reflect.DeepEqual(got, []Field{Username, Email, Phone}) {
		t.Fatalf("overwrite moved key: %v", got)
	}
	if msg, _ := m.Get(Username); msg != "a2" {
		t.Errorf("Get(username) = %q, want a2", msg)
	}

	m.Delete(Username)
	m.Set(Username, "a3")
	if got := m.Fields(); !reflect.DeepEqual(got, []Field{Email, Phone, Username}) {
		t.Fatalf("re-added key not at end: %v", got)
	}
	if f, _ := m.First(); f != Email {
		t.Errorf("First = %q, want email", f)
	}

	m.Delete(Password)
	if m.Len() != 3 {
		t.Errorf("Len = %d after deleting absent key, want 3", m.Len())
	}
}

func TestErrorMapCloneIsIndependent(t *testing.T) {
	m := NewErrorMap()
	m.Set(Username, "x")
	c := m.Clone()
	c.Set(Email, "y")
	c.Delete(Username)

	if !m.Has(Username) || m.Has(Email) {
		t.Errorf("original changed through clone: %v", m.Map())
	}
}

func TestErrorMapZeroValue(t *testing.T) {
	var m ErrorMap
	m.Set(Username, "x")
	if !m.Has(Username) {
		t.Fatal("zero ErrorMap did not record Set")
	}
	if _, ok := (&ErrorMap{}).First(); ok {
		t.Error("First on empty map reported a field")
	}
}

func TestFormDataWith(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value any
		ok    bool
		check func(FormData) bool
	}{
		{"text", Username, "abc", true, func(d FormData) bool { return d.Username == "abc" }},
		{"gender string", Gender, "male", true, func(d FormData) bool { return d.Gender == GenderMale }},
		{"gender value", Gender, GenderOther, true, func(d FormData) bool { return d.Gender == GenderOther }},
		{"consent bool", AgreeTerms, true, true, func(d FormData) bool { return d.AgreeTerms }},
		{"bool for text field", Username, true, false, func(d FormData) bool { return d.Username == "" }},
		{"string for bool field", AgreeTerms, "yes", false, func(d FormData) bool { return !d.AgreeTerms }},
		{"int", Phone, 123, false, func(d FormData) bool { return d.Phone == "" }},
		{"unknown field", Field("zip"), "12345", false, func(FormData) bool { return true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormData{}.With(tt.field, tt.value)
			if ok != tt.ok {
				t.Fatalf("With ok = %v, want %v", ok, tt.ok)
			}
			if !tt.check(got) {
				t.Errorf("unexpected data: %+v", got)
			}
		})
	}
}

func TestFormDataValueAndIsFilled(t *testing.T) {
	d := FormData{Username: "abc", Gender: GenderFemale, AgreeMarketing: true}

	if v, ok := d.Value(Gender); !ok || v != "female" {
		t.Errorf("Value(gender) = %v, %v", v, ok)
	}
	if v, ok := d.Value(AgreeTerms); !ok || v != false {
		t.Errorf("Value(agreeTerms) = %v, %v", v, ok)
	}
	if _, ok := d.Value(Field("zip")); ok {
		t.Error("Value of unknown field reported ok")
	}

	for f, want := range map[Field]bool{
		Username:       true,
		Email:          false,
		Gender:         true,
		AgreeTerms:     false,
		AgreeMarketing: true,
		Field("zip"):   false,
	} {
		if got := d.IsFilled(f); got != want {
			t.Errorf("IsFilled(%s) = %v, want %v", f, got, want)
		}
	}
}

func TestEveryFieldRoundTrips(t *testing.T) {
	for _, f := range AllFields {
		var v any = "x"
		if f == AgreeTerms || f == AgreeMarketing {
			v = true
		}
		d, ok := FormData{}.With(f, v)
		if !ok {
			t.Errorf("With(%s) rejected %v", f, v)
			continue
		}
		if got, _ := d.Value(f); got != v {
			t.Errorf("Value(%s) = %v, want %v", f, got, v)
		}
	}
}

func TestGenderOptions(t *testing.T) {
	opts := GenderOptions()
	if len(opts) != 3 {
		t.Fatalf("got %d options, want 3", len(opts))
	}
	if opts[0].Value != GenderMale || opts[2].Label != "Other" {
		t.Errorf("unexpected options: %+v", opts)
	}
}
