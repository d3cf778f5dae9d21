package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/sink"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

// Navigation choices offered after each section.
const (
	ActionPrevious = "Previous"
	ActionNext     = "Next"
	ActionSubmit   = "Submit"
)

// SubmittedNotice is printed once the form has been delivered.
const SubmittedNotice = "Form submitted successfully"

// Login prompts for a roll number and name until the flow yields a form or
// the user declines to retry. Blank answers are asked again without a remote
// call.
func (r *Renderer) Login(ctx context.Context, flow *session.Flow) (session.State, error) {
	if r.driver == nil {
		return session.State{}, ErrNoDriver
	}
	var rollNumber, name string
	for {
		var err error
		rollNumber, err = r.driver.Input(ctx, InputConfig{Message: "Roll Number", Default: rollNumber})
		if err != nil {
			return session.State{}, err
		}
		name, err = r.driver.Input(ctx, InputConfig{Message: "Name", Default: name})
		if err != nil {
			return session.State{}, err
		}

		state, err := flow.Login(ctx, rollNumber, name)
		if err == nil {
			return state, nil
		}
		if infoErr := r.driver.Info(ctx, r.styles.Error.Render(session.UserMessage(err))); infoErr != nil {
			return state, infoErr
		}
		if errors.Is(err, session.ErrMissingCredentials) {
			continue
		}
		if errors.Is(err, session.ErrBusy) {
			return state, err
		}

		retry, promptErr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if promptErr != nil {
			return state, promptErr
		}
		if !retry {
			return state, err
		}
	}
}

// Fill walks the controller through every section: it prints the section,
// prompts each field, then asks where to go next. Sections that fail
// validation are shown again with their errors. It returns once the form is
// submitted and delivered.
func (r *Renderer) Fill(ctx context.Context, ctrl *controller.Controller) (sink.Submission, error) {
	if r.driver == nil {
		return sink.Submission{}, ErrNoDriver
	}
	form := ctrl.Form()
	for {
		if err := ctx.Err(); err != nil {
			return sink.Submission{}, err
		}
		state := ctrl.State()
		page, err := r.RenderSection(ctx, form, render.RenderOptions{
			Index:  state.Index,
			Values: state.Values,
			Errors: state.Errors,
		})
		if err != nil {
			return sink.Submission{}, err
		}
		if err := r.driver.Info(ctx, string(page)); err != nil {
			return sink.Submission{}, err
		}

		for _, field := range ctrl.Section().Fields {
			if err := r.promptField(ctx, ctrl, field); err != nil {
				return sink.Submission{}, err
			}
		}

		action, err := r.promptAction(ctx, form, state.Index)
		if err != nil {
			return sink.Submission{}, err
		}
		switch action {
		case ActionPrevious:
			if err := ctrl.Previous(); err != nil {
				return sink.Submission{}, err
			}
		case ActionNext:
			if _, err := ctrl.Next(); err != nil {
				return sink.Submission{}, err
			}
		case ActionSubmit:
			submission, ok, err := ctrl.Submit(ctx)
			if err != nil {
				return submission, err
			}
			if ok {
				r.logger.Info("terminal form submitted", zap.String("form_id", submission.FormID))
				return submission, r.driver.Info(ctx, r.styles.Notice.Render(SubmittedNotice))
			}
		}
	}
}

func (r *Renderer) promptAction(ctx context.Context, form model.FormStructure, index int) (string, error) {
	var actions []string
	if index > 0 {
		actions = append(actions, ActionPrevious)
	}
	if index < form.LastIndex() {
		actions = append(actions, ActionNext)
	} else {
		actions = append(actions, ActionSubmit)
	}
	choice, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue",
		Options:      actions,
		DefaultIndex: len(actions) - 1,
	})
	if err != nil {
		return "", err
	}
	if choice < 0 || choice >= len(actions) {
		return "", errors.New("tui: invalid navigation choice")
	}
	return actions[choice], nil
}

func (r *Renderer) promptField(ctx context.Context, ctrl *controller.Controller, field model.FormField) error {
	widget := r.widgets.Resolve(field)
	if widget.Multiple() != (field.Type.ValueKind() == model.KindSet) {
		widget = widgets.For(field.Type)
	}
	state := ctrl.State()
	current := state.Values.Get(field)
	message := field.Label
	if field.Required {
		message += " *"
	}
	help := state.Errors[field.FieldID]
	if help == "" {
		help = field.Placeholder
	}

	switch widget.Kind {
	case widgets.KindTextarea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current.String(), Help: help})
		if err != nil {
			return err
		}
		return ctrl.Change(field.FieldID, answer)

	case widgets.KindSelect:
		options := append([]string{widget.Placeholder}, choiceLabels([]string{widget.Placeholder}, field.Options)...)
		defaultIndex := 0
		for i, opt := range field.Options {
			if current.Contains(opt.Value) {
				defaultIndex = i + 1
			}
		}
		choice, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIndex, Help: help})
		if err != nil {
			return err
		}
		value := ""
		if choice > 0 && choice <= len(field.Options) {
			value = field.Options[choice-1].Value
		}
		return ctrl.Change(field.FieldID, value)

	case widgets.KindRadioGroup:
		options := choiceLabels(nil, field.Options)
		defaultIndex := -1
		for i, opt := range field.Options {
			if current.Contains(opt.Value) {
				defaultIndex = i
			}
		}
		choice, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: defaultIndex, Help: help})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(field.Options) {
			return nil
		}
		return ctrl.Change(field.FieldID, field.Options[choice].Value)

	case widgets.KindCheckboxGroup:
		options := choiceLabels(nil, field.Options)
		var defaults []int
		for i, opt := range field.Options {
			if current.Contains(opt.Value) {
				defaults = append(defaults, i)
			}
		}
		chosen, err := r.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: options, Defaults: defaults, Help: help})
		if err != nil {
			return err
		}
		for i, opt := range field.Options {
			if err := ctrl.Toggle(field.FieldID, opt.Value, slices.Contains(chosen, i)); err != nil {
				return err
			}
		}
		return nil

	default:
		answer, err := r.driver.Input(ctx, InputConfig{Message: message, Default: current.String(), Help: help})
		if err != nil {
			return err
		}
		return ctrl.Change(field.FieldID, answer)
	}
}

// choiceLabels returns one prompt label per option. Prompt libraries match
// answers and defaults by label, so a label that repeats one in reserved or
// another option gets its value appended, and an index when that still
// collides.
func choiceLabels(reserved []string, options []model.FieldOption) []string {
	counts := make(map[string]int, len(options)+len(reserved))
	for _, label := range reserved {
		counts[label]++
	}
	for _, opt := range options {
		counts[opt.Label]++
	}

	seen := make(map[string]bool, len(options)+len(reserved))
	for _, label := range reserved {
		seen[label] = true
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		label := opt.Label
		if counts[label] > 1 {
			label = fmt.Sprintf("%s (%s)", opt.Label, opt.Value)
		}
		if seen[label] {
			label = fmt.Sprintf("%s #%d", label, i+1)
		}
		seen[label] = true
		labels[i] = label
	}
	return labels
}
