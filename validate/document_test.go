package validate

import (
	"strings"
	"testing"
)

func TestDocumentConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"full", "settle_delay: 250ms\ndatabase: signup.db\ntheme: auto\nlog:\n  verbose: true\n  file: x.log\n", false},
		{"json", `{"theme": "dark"}`, false},
		{"unknown key", "retries: 3\n", true},
		{"bad theme", "theme: blue\n", true},
		{"bad delay", "settle_delay: 3 seconds\n", true},
		{"bad log type", "log:\n  verbose: maybe\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := Document(ConfigDocument, []byte(tt.input))
			if err != nil {
				t.Fatalf("Document error: %v", err)
			}
			if got := len(errs) > 0; got != tt.wantErr {
				t.Errorf("errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestDocumentAnswers(t *testing.T) {
	errs, err := Document(AnswersDocument, []byte("username: abc\nbirthDate: 2000-01-01\nagreeTerms: true\n"))
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}

	errs, err = Document(AnswersDocument, []byte("agreeTerms: \"yes\"\nzip: 123\n"))
	if err != nil {
		t.Fatalf("Document error: %v", err)
	}
	if len(errs) != 2 {
		t.Errorf("errors = %v, want 2", errs)
	}
}

func TestDocumentParseError(t *testing.T) {
	_, err := Document(AnswersDocument, []byte("username: [abc\n"))
	if err == nil || !strings.Contains(err.Error(), "parsing answers document") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestDocumentUnknownKind(t *testing.T) {
	if _, err := Document(DocumentKind("nope"), []byte("{}")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
