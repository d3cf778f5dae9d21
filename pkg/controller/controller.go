package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Option customises a Controller.
type Option func(*Controller)

// WithSink sets the destination for submitted values.
func WithSink(s sink.Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller owns one State for a form and applies transitions to it. It is
// not safe for concurrent use; callers serialize access.
type Controller struct {
	form   model.FormStructure
	state  State
	sink   sink.Sink
	logger *zap.Logger
	now    func() time.Time
}

// New validates the form structure and initialises a controller on its first
// section.
func New(form model.FormStructure, opts ...Option) (*Controller, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	state, err := Init(form)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		form:   form,
		state:  state,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.sink == nil {
		c.sink = sink.Log(c.logger)
	}
	return c, nil
}

// Form returns the schema the controller was built with.
func (c *Controller) Form() model.FormStructure {
	return c.form
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state.Clone()
}

// Section returns the active section.
func (c *Controller) Section() model.FormSection {
	section, _ := c.state.Section(c.form)
	return section
}

// Errors returns the validation errors of the last Next or Submit.
func (c *Controller) Errors() validation.Errors {
	return c.state.Errors.Clone()
}

// Change sets a scalar field.
func (c *Controller) Change(fieldID, value string) error {
	return c.apply(func(s State) (State, error) {
		return Change(c.form, s, fieldID, value)
	})
}

// Toggle flips one option of a checkbox group.
func (c *Controller) Toggle(fieldID, option string, checked bool) error {
	return c.apply(func(s State) (State, error) {
		return Toggle(c.form, s, fieldID, option, checked)
	})
}

// Next validates the active section and advances when valid. The boolean
// reports whether the index moved.
func (c *Controller) Next() (bool, error) {
	before := c.state.Index
	if err := c.apply(func(s State) (State, error) { return Next(c.form, s) }); err != nil {
		return false, err
	}
	moved := c.state.Index != before
	if !moved {
		c.logger.Debug("section blocked by validation",
			zap.Int("section", before),
			zap.Strings("fields", c.state.Errors.FieldIDs()),
		)
	}
	return moved, nil
}

// Previous steps back one section.
func (c *Controller) Previous() error {
	return c.apply(func(s State) (State, error) { return Previous(c.form, s) })
}

// Submit validates the last section and, when valid, delivers the full value
// map to the sink. The returned Submission is zero when validation failed.
func (c *Controller) Submit(ctx context.Context) (sink.Submission, bool, error) {
	if err := c.apply(func(s State) (State, error) { return Submit(c.form, s) }); err != nil {
		return sink.Submission{}, false, err
	}
	if !c.state.Submitted {
		return sink.Submission{}, false, nil
	}

	submission := sink.Submission{
		FormID:      c.form.FormID,
		Version:     c.form.Version,
		Values:      c.state.Values.Clone(),
		SubmittedAt: c.now(),
	}
	if err := c.sink.Deliver(ctx, submission); err != nil {
		return submission, true, fmt.Errorf("controller: deliver submission: %w", err)
	}
	c.logger.Info("form submitted", zap.String("form_id", c.form.FormID))
	return submission, true, nil
}

func (c *Controller) apply(fn func(State) (State, error)) error {
	next, err := fn(c.state)
	if err != nil {
		if !errors.Is(err, ErrNoNextSection) {
			c.logger.Debug("transition rejected", zap.Error(err))
		}
		return err
	}
	c.state = next
	return nil
}
