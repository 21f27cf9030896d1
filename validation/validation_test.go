package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/procout/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("path", "/bin/sh")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("path", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("path", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorNoNUL(t *testing.T) {
	if New().NoNUL("arg", "plain").HasErrors() {
		t.Error("expected no error for plain text")
	}
	if !New().NoNUL("arg", "a\x00b").HasErrors() {
		t.Error("expected error for embedded NUL")
	}
}

func TestValidatorRange(t *testing.T) {
	if New().Range("chunk_size", 10, 1, 100).HasErrors() {
		t.Error("expected value in range to pass")
	}
	if !New().Range("chunk_size", 0, 1, 100).HasErrors() {
		t.Error("expected value below range to fail")
	}
	if !New().Range("chunk_size", 101, 1, 100).HasErrors() {
		t.Error("expected value above range to fail")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"yaml", "json"}
	if New().OneOf("format", "yaml", allowed).HasErrors() {
		t.Error("expected allowed value to pass")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	if !New().OneOf("format", "xml", allowed).HasErrors() {
		t.Error("expected disallowed value to fail")
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "env", "bad").HasErrors() {
		t.Error("expected true condition to pass")
	}
	v := New().Custom(false, "env", "must not contain '='")
	if !v.HasErrors() || v.Errors()[0].Message != "must not contain '='" {
		t.Errorf("expected custom message, got %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil AppError without errors")
	}
	if New().Err() != nil {
		t.Error("expected nil error interface without errors")
	}

	appErr := New().Required("path", "").NoNUL("arg", "\x00").Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "path: is required") || !strings.Contains(appErr.Message, "arg: must not contain NUL bytes") {
		t.Errorf("expected both field messages, got %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("name", "value"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}

type sampleConfig struct {
	ChunkSize int    `mapstructure:"chunk_size" validate:"gte=0,lte=1024"`
	Format    string `yaml:"format" validate:"omitempty,oneof=yaml json"`
	Label     string `validate:"omitempty,min=3"`
	Mode      string `mapstructure:"mode" validate:"omitempty,even_length"`
}

func init() {
	if err := RegisterValidation("even_length", func(s string) bool { return len(s)%2 == 0 }); err != nil {
		panic(err)
	}
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate(&sampleConfig{ChunkSize: 512, Format: "json", Label: "abc", Mode: "ab"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateFieldNames(t *testing.T) {
	err := Validate(&sampleConfig{ChunkSize: 2048, Format: "xml", Label: "ab"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"chunk_size: must be at most 1024", "format: must be one of: yaml json", "label: must be at least 3 characters"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestStructValidateCustomTag(t *testing.T) {
	err := Validate(&sampleConfig{Mode: "odd"})
	if err == nil {
		t.Fatal("expected custom tag to reject odd length")
	}
	if !strings.Contains(err.Error(), "mode: is invalid") {
		t.Errorf("expected mode to be reported, got %q", err.Error())
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("DrainTimeout"); got != "drain_timeout" {
		t.Errorf("expected drain_timeout, got %q", got)
	}
}
