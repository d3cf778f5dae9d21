package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Default endpoints of the public form service.
const (
	DefaultBaseURL      = "https://dynamic-form-generator-9rl7.onrender.com"
	DefaultRegisterPath = "/create-user"
	DefaultFormPath     = "/get-form"
	DefaultTimeout      = 30 * time.Second
)

const alreadyExistsMarker = "user already exists"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// User identifies the person filling the form.
type User struct {
	RollNumber string `json:"rollNumber"`
	Name       string `json:"name"`
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at another service instance.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(base), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithPaths overrides the register and fetch-form paths.
func WithPaths(register, form string) ClientOption {
	return func(c *Client) {
		if register != "" {
			c.registerPath = register
		}
		if form != "" {
			c.formPath = form
		}
	}
}

// WithHTTPClient injects the HTTP client used for both calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithClientLogger attaches a zap logger.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client calls the register and fetch-form endpoints.
type Client struct {
	baseURL      string
	registerPath string
	formPath     string
	http         *http.Client
	logger       *zap.Logger
}

// NewClient builds a client targeting the default service unless overridden.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		registerPath: DefaultRegisterPath,
		formPath:     DefaultFormPath,
		http:         &http.Client{Timeout: DefaultTimeout},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type messageBody struct {
	Message string `json:"message"`
}

// Register creates the user. A rejection whose message says the user already
// exists yields ErrUserExists; any other non-2xx answer is a *RemoteError.
func (c *Client) Register(ctx context.Context, user User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.registerPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("session: build register request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return &RemoteError{Op: OpRegister, Message: transportMessage(err), Err: err}
	}
	c.logger.Debug("registration response", zap.Int("status", status), zap.ByteString("body", body))
	if isSuccess(status) {
		return nil
	}

	msg := decodeMessage(body)
	if strings.Contains(strings.ToLower(msg), alreadyExistsMarker) {
		return ErrUserExists
	}
	if msg == "" {
		msg = MessageRegisterFailed
	}
	return &RemoteError{Op: OpRegister, Status: status, Message: msg}
}

// FetchForm loads the form assigned to rollNumber.
func (c *Client) FetchForm(ctx context.Context, rollNumber string) (model.FormResponse, error) {
	endpoint, err := url.Parse(c.baseURL + c.formPath)
	if err != nil {
		return model.FormResponse{}, fmt.Errorf("session: form url: %w", err)
	}
	query := endpoint.Query()
	query.Set("rollNumber", rollNumber)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return model.FormResponse{}, fmt.Errorf("session: build form request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return model.FormResponse{}, &RemoteError{Op: OpFetchForm, Message: transportMessage(err), Err: err}
	}
	c.logger.Debug("form data response", zap.Int("status", status), zap.Int("bytes", len(body)))
	if !isSuccess(status) {
		msg := decodeMessage(body)
		if msg == "" {
			msg = MessageFetchFailed
		}
		return model.FormResponse{}, &RemoteError{Op: OpFetchForm, Status: status, Message: msg}
	}

	resp, err := DecodeFormResponse(body)
	if err != nil {
		return model.FormResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

func decodeMessage(body []byte) string {
	var msg messageBody
	if err := json.Unmarshal(body, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg.Message)
}

func transportMessage(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Request cancelled or timed out"
	}
	return "An unexpected error occurred"
}
