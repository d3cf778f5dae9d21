package testsupport

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
)

//go:embed testdata/sample_form.json
var sampleFormResponse []byte

// SampleFormResponseJSON returns the raw fetch-form body used across tests
// and by the examples. Every field type appears at least once.
func SampleFormResponseJSON() []byte {
	return bytes.Clone(sampleFormResponse)
}

// SampleFormResponse decodes the embedded fetch-form body.
func SampleFormResponse() (model.FormResponse, error) {
	var resp model.FormResponse
	if err := json.Unmarshal(sampleFormResponse, &resp); err != nil {
		return model.FormResponse{}, fmt.Errorf("testsupport: decode sample form: %w", err)
	}
	return resp, nil
}

// MustSampleForm returns the embedded sample form structure.
func MustSampleForm(t *testing.T) model.FormStructure {
	t.Helper()

	resp, err := SampleFormResponse()
	if err != nil {
		t.Fatalf("sample form: %v", err)
	}
	return resp.Form
}

// MustLoadForm loads a JSON form fixture.
func MustLoadForm(t *testing.T, path string) model.FormStructure {
	t.Helper()

	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadForm reads a JSON fixture holding either a bare form structure or a
// fetch-form envelope.
func LoadForm(path string) (model.FormStructure, error) {
	if path == "" {
		return model.FormStructure{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormStructure{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	var envelope model.FormResponse
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Form.Sections) > 0 {
		return envelope.Form, nil
	}
	var out model.FormStructure
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormStructure{}, fmt.Errorf("testsupport: unmarshal form: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs a render function against a buffer and returns what was
// written.
func CaptureOutput(t *testing.T, render func(io.Writer) error) string {
	t.Helper()

	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}
