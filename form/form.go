// Package form holds the signup data model shared by the schema registry,
// the step router and the wizard store.
package form

// Field names a single input of the signup form. Values match the keys used
// by answers files and the error map.
type Field string

const (
	Username       Field = "username"
	Password       Field = "password"
	Email          Field = "email"
	Phone          Field = "phone"
	BirthDate      Field = "birthDate"
	Gender         Field = "gender"
	Nickname       Field = "nickname"
	Interests      Field = "interests"
	Facebook       Field = "facebook"
	Instagram      Field = "instagram"
	GitHub         Field = "github"
	AgreeTerms     Field = "agreeTerms"
	AgreeMarketing Field = "agreeMarketing"
)

// AllFields lists every field in form order.
var AllFields = []Field{
	Username, Password, Email, Phone,
	BirthDate, Gender, Nickname, Interests,
	Facebook, Instagram, GitHub, AgreeTerms, AgreeMarketing,
}

// GenderValue is the closed set of gender answers. The empty value means the
// user has not picked one yet.
type GenderValue string

const (
	GenderUnset  GenderValue = ""
	GenderMale   GenderValue = "male"
	GenderFemale GenderValue = "female"
	GenderOther  GenderValue = "other"
)

// GenderOption pairs a gender value with its display label.
type GenderOption struct {
	Value GenderValue
	Label string
}

// GenderOptions returns the selectable genders in display order.
func GenderOptions() []GenderOption {
	return []GenderOption{
		{Value: GenderMale, Label: "Male"},
		{Value: GenderFemale, Label: "Female"},
		{Value: GenderOther, Label: "Other"},
	}
}

// FormData holds every field across all three steps.
type FormData struct {
	// Step 1: account
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone"`

	// Step 2: profile
	BirthDate string      `yaml:"birthDate" json:"birthDate"`
	Gender    GenderValue `yaml:"gender,omitempty" json:"gender,omitempty"`
	Nickname  string      `yaml:"nickname" json:"nickname"`
	Interests string      `yaml:"interests,omitempty" json:"interests,omitempty"`

	// Step 3: social accounts and consents
	Facebook       string `yaml:"facebook,omitempty" json:"facebook,omitempty"`
	Instagram      string `yaml:"instagram,omitempty" json:"instagram,omitempty"`
	GitHub         string `yaml:"github,omitempty" json:"github,omitempty"`
	AgreeTerms     bool   `yaml:"agreeTerms" json:"agreeTerms"`
	AgreeMarketing bool   `yaml:"agreeMarketing" json:"agreeMarketing"`
}

// Value returns the current value of f. Text fields yield a string and the
// consent fields a bool. The second result is false for unknown fields.
func (d FormData) Value(f Field) (any, bool) {
	switch f {
	case Username:
		return d.Username, true
	case Password:
		return d.Password, true
	case Email:
		return d.Email, true
	case Phone:
		return d.Phone, true
	case BirthDate:
		return d.BirthDate, true
	case Gender:
		return string(d.Gender), true
	case Nickname:
		return d.Nickname, true
	case Interests:
		return d.Interests, true
	case Facebook:
		return d.Facebook, true
	case Instagram:
		return d.Instagram, true
	case GitHub:
		return d.GitHub, true
	case AgreeTerms:
		return d.AgreeTerms, true
	case AgreeMarketing:
		return d.AgreeMarketing, true
	}
	return nil, false
}

// IsFilled reports whether f holds a non-empty string or a true bool.
func (d FormData) IsFilled(f Field) bool {
	v, ok := d.Value(f)
	if !ok {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case bool:
		return val
	}
	return false
}

// With returns a copy of d with f set to v. It reports false, leaving d
// unchanged, when v has the wrong type for f or f is unknown.
func (d FormData) With(f Field, v any) (FormData, bool) {
	if b, ok := v.(bool); ok {
		switch f {
		case AgreeTerms:
			d.AgreeTerms = b
		case AgreeMarketing:
			d.AgreeMarketing = b
		default:
			return d, false
		}
		return d, true
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case GenderValue:
		s = string(val)
	default:
		return d, false
	}

	switch f {
	case Username:
		d.Username = s
	case Password:
		d.Password = s
	case Email:
		d.Email = s
	case Phone:
		d.Phone = s
	case BirthDate:
		d.BirthDate = s
	case Gender:
		d.Gender = GenderValue(s)
	case Nickname:
		d.Nickname = s
	case Interests:
		d.Interests = s
	case Facebook:
		d.Facebook = s
	case Instagram:
		d.Instagram = s
	case GitHub:
		d.GitHub = s
	default:
		return d, false
	}
	return d, true
}
