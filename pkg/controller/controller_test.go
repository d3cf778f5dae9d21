package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/sink"
)

func TestControllerDeliversSubmission(t *testing.T) {
	var delivered []sink.Submission
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c, err := New(twoSectionForm(),
		WithSink(sink.Func(func(_ context.Context, s sink.Submission) error {
			delivered = append(delivered, s)
			return nil
		})),
		WithClock(func() time.Time { return fixed }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := c.Change("name", "Ada"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := c.Toggle("hobbies", "go", true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	moved, err := c.Next()
	if err != nil || !moved {
		t.Fatalf("expected to advance, moved=%v err=%v", moved, err)
	}
	if c.Section().SectionID != 2 {
		t.Fatalf("expected second section, got %d", c.Section().SectionID)
	}
	if err := c.Change("email", "ada@example.com"); err != nil {
		t.Fatalf("change: %v", err)
	}

	sub, ok, err := c.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	if len(delivered) != 1 {
		t.Fatalf("expected one delivery, got %d", len(delivered))
	}
	want := map[string]any{
		"name":    "Ada",
		"hobbies": []string{"go"},
		"email":   "ada@example.com",
		"phone":   "",
	}
	if diff := cmp.Diff(want, sub.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if sub.FormID != "profile" || !sub.SubmittedAt.Equal(fixed) {
		t.Fatalf("unexpected submission metadata: %+v", sub)
	}

	if err := c.Previous(); !errors.Is(err, ErrSubmitted) {
		t.Fatalf("expected ErrSubmitted, got %v", err)
	}
}

func TestControllerBlockedSubmitSkipsSink(t *testing.T) {
	calls := 0
	form := model.FormStructure{Sections: []model.FormSection{{
		Fields: []model.FormField{{FieldID: "email", Type: model.FieldTypeEmail, Required: true}},
	}}}
	c, err := New(form, WithSink(sink.Func(func(context.Context, sink.Submission) error {
		calls++
		return nil
	})))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_ = c.Change("email", "nope")

	_, ok, err := c.Submit(context.Background())
	if err != nil || ok {
		t.Fatalf("expected blocked submit, ok=%v err=%v", ok, err)
	}
	if calls != 0 {
		t.Fatalf("sink should not be called")
	}
	if c.Errors()["email"] != "Invalid email" {
		t.Fatalf("expected email error, got %v", c.Errors())
	}
}

func TestControllerSinkFailure(t *testing.T) {
	boom := errors.New("boom")
	form := model.FormStructure{Sections: []model.FormSection{{
		Fields: []model.FormField{{FieldID: "note", Type: model.FieldTypeTextarea}},
	}}}
	c, err := New(form, WithSink(sink.Func(func(context.Context, sink.Submission) error { return boom })))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := c.Submit(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestNewRejectsInvalidForm(t *testing.T) {
	form := model.FormStructure{Sections: []model.FormSection{{
		Fields: []model.FormField{{FieldID: "pick", Type: model.FieldTypeRadio}},
	}}}
	if _, err := New(form); !errors.Is(err, model.ErrInvalidForm) {
		t.Fatalf("expected ErrInvalidForm, got %v", err)
	}
}
