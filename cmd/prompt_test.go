package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/jskinn96/signup/accounts"
	"github.com/jskinn96/signup/wizard"
)

// scriptedPrompter answers prompts from per-label queues. A text answer that
// fails its check is recorded and the next one is taken, as promptui re-asks.
type scriptedPrompter struct {
	texts    map[string][]string
	selects  map[string]int
	confirms map[string][]bool
	rejected []string
}

func (s *scriptedPrompter) Text(label, _ string, _ bool, check func(string) error) (string, error) {
	for {
		q := s.texts[label]
		if len(q) == 0 {
			return "", errPromptAborted
		}
		s.texts[label] = q[1:]
		if err := check(q[0]); err != nil {
			s.rejected = append(s.rejected, label+": "+err.Error())
			continue
		}
		return q[0], nil
	}
}

func (s *scriptedPrompter) Select(label string, _ []string) (int, error) {
	i, ok := s.selects[label]
	if !ok {
		return -1, errPromptAborted
	}
	return i, nil
}

func (s *scriptedPrompter) Confirm(label string) (bool, error) {
	q := s.confirms[label]
	if len(q) == 0 {
		return false, errPromptAborted
	}
	s.confirms[label] = q[1:]
	return q[0], nil
}

func validScript() *scriptedPrompter {
	return &scriptedPrompter{
		texts: map[string][]string{
			"Username":             {"abc_123"},
			"Password":             {"abc12345!"},
			"Email":                {"a@b.co"},
			"Phone":                {"01012345678"},
			"Date of birth":        {"2000-01-01"},
			"Nickname":             {"nick"},
			"Interests (optional)": {""},
			"Facebook (optional)":  {""},
			"Instagram (optional)": {""},
			"GitHub (optional)":    {"octo"},
		},
		selects: map[string]int{"Gender": 1},
		confirms: map[string][]bool{
			"I agree to the terms of service":    {true},
			"Send me news and offers (optional)": {false},
		},
	}
}

func newPromptStore(t *testing.T) (*wizard.Store, *accounts.Store) {
	t.Helper()
	acc, err := accounts.Open(context.Background(), filepath.Join(t.TempDir(), "accounts.db"),
		accounts.WithHashCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { acc.Close() })
	return wizard.New(wizard.WithSubmitter(acc), wizard.WithSettleDelay(0)), acc
}

func TestRunPromptsCreatesAccount(t *testing.T) {
	store, acc := newPromptStore(t)
	p := validScript()
	p.texts["Username"] = []string{"ab", "abc_123"}

	var out bytes.Buffer
	res, err := runPrompts(context.Background(), store, p, &out)
	if err != nil {
		t.Fatalf("runPrompts: %v", err)
	}
	if !res.Success || res.AccountID == "" {
		t.Fatalf("result = %+v", res)
	}
	if len(p.rejected) != 1 || !strings.Contains(p.rejected[0], "3 or more characters") {
		t.Errorf("rejected = %v", p.rejected)
	}
	for _, want := range []string{"Step 1 of 3: Welcome", "Step 2 of 3: About You", "Step 3 of 3: Connect"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	list, err := acc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d accounts", len(list))
	}
	a := list[0]
	if a.Phone != "010-1234-5678" || a.Gender != "female" || a.GitHub != "octo" {
		t.Errorf("account = %+v", a)
	}
}

func TestRunPromptsRetriesTakenUsername(t *testing.T) {
	store, acc := newPromptStore(t)
	if _, err := runPrompts(context.Background(), store, validScript(), &bytes.Buffer{}); err != nil {
		t.Fatalf("first sign up: %v", err)
	}

	p := validScript()
	p.texts = map[string][]string{
		"Username":             {"abc_123", "abc_456"},
		"Password":             {"abc12345!", "abc12345!"},
		"Email":                {"a@b.co", "a@b.co"},
		"Phone":                {"01012345678", "010-1234-5678"},
		"Date of birth":        {"2000-01-01", "2000-01-01"},
		"Nickname":             {"nick", "nick"},
		"Interests (optional)": {"", ""},
		"Facebook (optional)":  {"", ""},
		"Instagram (optional)": {"", ""},
		"GitHub (optional)":    {"", ""},
	}
	p.confirms["I agree to the terms of service"] = []bool{true, true}
	p.confirms["Send me news and offers (optional)"] = []bool{false, true}
	p.confirms["Try again"] = []bool{true}

	var out bytes.Buffer
	res, err := runPrompts(context.Background(), store, p, &out)
	if err != nil {
		t.Fatalf("runPrompts: %v", err)
	}
	if !res.Success {
		t.Fatalf("result = %+v\n%s", res, out.String())
	}
	if !strings.Contains(out.String(), "ERROR: username: "+accounts.MsgUsernameTaken) {
		t.Errorf("output missing taken-username error:\n%s", out.String())
	}

	list, _ := acc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("got %d accounts, want 2", len(list))
	}
}

func TestRunPromptsDeclinedTerms(t *testing.T) {
	store, acc := newPromptStore(t)
	p := validScript()
	p.confirms["I agree to the terms of service"] = []bool{false}
	p.confirms["Try again"] = []bool{false}

	var out bytes.Buffer
	res, err := runPrompts(context.Background(), store, p, &out)
	if err != nil {
		t.Fatalf("runPrompts: %v", err)
	}
	if res.Success {
		t.Fatal("sign up succeeded without terms")
	}
	if !strings.Contains(out.String(), "ERROR: agreeTerms: you must agree to the terms of service") {
		t.Errorf("output:\n%s", out.String())
	}
	if list, _ := acc.List(context.Background()); len(list) != 0 {
		t.Errorf("got %d accounts, want none", len(list))
	}
}

func TestRunPromptsAborted(t *testing.T) {
	store, _ := newPromptStore(t)
	p := validScript()
	delete(p.texts, "Email")

	_, err := runPrompts(context.Background(), store, p, &bytes.Buffer{})
	if !errors.Is(err, errPromptAborted) {
		t.Errorf("err = %v, want errPromptAborted", err)
	}
	if got := store.Snapshot().FormData.Username; got != "abc_123" {
		t.Errorf("answers before the abort were not kept: %q", got)
	}
}
