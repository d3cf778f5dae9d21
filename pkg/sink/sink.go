// Package sink delivers submitted form values.
package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Submission is the payload handed to a Sink after a successful submit.
type Submission struct {
	FormID      string       `json:"formId"`
	Version     string       `json:"version"`
	Values      model.Values `json:"values"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

// Payload returns the plain fieldId to string or []string map.
func (s Submission) Payload() map[string]any {
	return s.Values.Payload()
}

// Sink receives submissions.
type Sink interface {
	Deliver(ctx context.Context, submission Submission) error
}

// Func adapts a plain function to Sink.
type Func func(ctx context.Context, submission Submission) error

// Deliver calls f.
func (f Func) Deliver(ctx context.Context, submission Submission) error {
	if f == nil {
		return nil
	}
	return f(ctx, submission)
}

// LogSink writes the collected values to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

// Log returns a sink that logs every submission at info level.
func Log(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Deliver implements Sink.
func (l *LogSink) Deliver(_ context.Context, submission Submission) error {
	data, err := json.Marshal(submission.Payload())
	if err != nil {
		return fmt.Errorf("sink: encode values: %w", err)
	}
	l.logger.Info("collected form data",
		zap.String("form_id", submission.FormID),
		zap.String("version", submission.Version),
		zap.Time("submitted_at", submission.SubmittedAt),
		zap.ByteString("values", data),
	)
	return nil
}

// Multi fans a submission out to every sink in order. All sinks are called;
// failures are joined.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (m multi) Deliver(ctx context.Context, submission Submission) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Deliver(ctx, submission); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
