package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPOption customises an HTTPSink.
type HTTPOption func(*HTTPSink)

// WithHTTPClient overrides the client used to post submissions.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSink) {
		if client != nil {
			s.client = client
		}
	}
}

// WithHeader adds a static request header.
func WithHeader(key, value string) HTTPOption {
	return func(s *HTTPSink) {
		s.headers.Set(key, value)
	}
}

// HTTPSink posts the value map as JSON to an endpoint.
type HTTPSink struct {
	endpoint string
	client   *http.Client
	headers  http.Header
}

// HTTP builds a sink posting to endpoint.
func HTTP(endpoint string, opts ...HTTPOption) *HTTPSink {
	s := &HTTPSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		headers:  make(http.Header),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Deliver implements Sink.
func (s *HTTPSink) Deliver(ctx context.Context, submission Submission) error {
	if strings.TrimSpace(s.endpoint) == "" {
		return fmt.Errorf("sink: http endpoint is empty")
	}
	body, err := json.Marshal(submission.Payload())
	if err != nil {
		return fmt.Errorf("sink: encode values: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sink: build request: %w", err)
	}
	for key, values := range s.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink: post submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sink: post submission: unexpected status %d", resp.StatusCode)
	}
	return nil
}
