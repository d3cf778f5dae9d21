package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Service is the remote surface Flow depends on. *Client implements it.
type Service interface {
	Register(ctx context.Context, user User) error
	FetchForm(ctx context.Context, rollNumber string) (model.FormResponse, error)
}

// State is the outcome of the last login attempt.
type State struct {
	User *User
	Form *model.FormStructure
	Err  error
}

// Authenticated reports whether a user is logged in.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Ready reports whether the form can be shown.
func (s State) Ready() bool {
	return s.User != nil && s.Form != nil
}

// FlowOption customises a Flow.
type FlowOption func(*Flow)

// WithFlowLogger attaches a zap logger.
func WithFlowLogger(logger *zap.Logger) FlowOption {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Flow runs register then fetch-form for one login at a time.
type Flow struct {
	service Service
	logger  *zap.Logger

	mu    sync.Mutex
	busy  bool
	state State
}

// NewFlow builds a flow over service.
func NewFlow(service Service, opts ...FlowOption) *Flow {
	f := &Flow{service: service, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Login registers the user and then fetches their form. Blank input is
// rejected without any remote call, and a concurrent attempt fails with
// ErrBusy. The returned State is also retained for State().
func (f *Flow) Login(ctx context.Context, rollNumber, name string) (State, error) {
	user := User{
		RollNumber: strings.TrimSpace(rollNumber),
		Name:       strings.TrimSpace(name),
	}
	if user.RollNumber == "" || user.Name == "" {
		return f.State(), ErrMissingCredentials
	}

	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return State{}, ErrBusy
	}
	f.busy = true
	f.mu.Unlock()

	next := f.login(ctx, user)

	f.mu.Lock()
	f.busy = false
	f.state = next
	f.mu.Unlock()
	return next, next.Err
}

func (f *Flow) login(ctx context.Context, user User) State {
	logger := f.logger.With(zap.String("roll_number", user.RollNumber))

	err := f.service.Register(ctx, user)
	switch {
	case err == nil:
		logger.Info("user registered")
	case errors.Is(err, ErrUserExists):
		logger.Info("user already registered, continuing")
	default:
		logger.Warn("registration failed", zap.Error(err))
		return State{Err: err}
	}

	resp, err := f.service.FetchForm(ctx, user.RollNumber)
	if err != nil {
		logger.Warn("form fetch failed", zap.Error(err))
		return State{User: &user, Err: err}
	}
	form := resp.Form
	logger.Info("form loaded",
		zap.String("form_id", form.FormID),
		zap.Int("sections", len(form.Sections)),
	)
	return State{User: &user, Form: &form}
}

// Busy reports whether a login is in flight.
func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// State returns the last login outcome.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Logout drops the user and the form.
func (f *Flow) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = State{}
}
