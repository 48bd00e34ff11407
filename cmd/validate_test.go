package cmd

import (
	"strings"
	"testing"
)

func setValidateFlags(t *testing.T, from string, step int) {
	t.Helper()
	oldFrom, oldStep := validateFrom, validateStep
	validateFrom, validateStep = from, step
	t.Cleanup(func() { validateFrom, validateStep = oldFrom, oldStep })
}

func TestRunValidate_ValidConfig(t *testing.T) {
	useTestConfig(t)
	setValidateFlags(t, "", 0)

	c, out, _ := testCommand()
	if err := runValidate(c, nil); err != nil {
		t.Fatalf("runValidate() error: %v", err)
	}
	if !strings.Contains(out.String(), "Validation passed.") {
		t.Errorf("output = %q", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	dir := useTestConfig(t)
	cfgFile = writeTestFile(t, dir, "bad.yaml", "theme: neon\nretries: 3\n")
	setValidateFlags(t, "", 0)

	c, _, errOut := testCommand()
	if err := runValidate(c, nil); err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(errOut.String(), "ERROR:") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunValidate_Answers(t *testing.T) {
	dir := useTestConfig(t)
	setValidateFlags(t, writeTestFile(t, dir, "answers.yaml", validAnswers), 0)

	c, out, errOut := testCommand()
	if err := runValidate(c, nil); err != nil {
		t.Fatalf("runValidate() error: %v\nstderr: %s", err, errOut)
	}
	for _, want := range []string{"step 1 (Welcome): ok", "step 2 (About You): ok", "step 3 (Connect): ok"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunValidate_AnswersWithErrors(t *testing.T) {
	dir := useTestConfig(t)
	answers := strings.Replace(validAnswers, "username: abc_123", "username: ab", 1)
	answers = strings.Replace(answers, "agreeTerms: true", "agreeTerms: false", 1)
	setValidateFlags(t, writeTestFile(t, dir, "answers.yaml", answers), 0)

	c, out, errOut := testCommand()
	err := runValidate(c, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "2 step(s)") {
		t.Errorf("error = %v, want 2 failing steps", err)
	}
	if !strings.Contains(out.String(), "step 2 (About You): ok") {
		t.Errorf("step 2 should pass:\n%s", out)
	}
	if !strings.Contains(errOut.String(), "username: username must be 3 or more characters") {
		t.Errorf("stderr = %q", errOut)
	}
	if !strings.Contains(errOut.String(), "agreeTerms: you must agree to the terms of service") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRunValidate_SingleStep(t *testing.T) {
	dir := useTestConfig(t)
	answers := strings.Replace(validAnswers, "username: abc_123", "username: ab", 1)
	setValidateFlags(t, writeTestFile(t, dir, "answers.yaml", answers), 2)

	c, out, _ := testCommand()
	if err := runValidate(c, nil); err != nil {
		t.Fatalf("runValidate() error: %v", err)
	}
	if strings.Contains(out.String(), "step 1") {
		t.Errorf("step 1 should be skipped:\n%s", out)
	}
}

func TestRunValidate_BadStep(t *testing.T) {
	dir := useTestConfig(t)
	setValidateFlags(t, writeTestFile(t, dir, "answers.yaml", validAnswers), 4)

	c, _, _ := testCommand()
	if err := runValidate(c, nil); err == nil {
		t.Fatal("expected error for --step 4")
	}
}
