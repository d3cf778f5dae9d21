package sink

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formflow/pkg/model"
)

func sampleSubmission() Submission {
	return Submission{
		FormID:      "f1",
		Version:     "1",
		SubmittedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Values: model.Values{
			"name":    model.Scalar("Ada"),
			"hobbies": model.Set("chess"),
		},
	}
}

func TestLogSinkWritesValues(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := Log(zap.New(core))

	require.NoError(t, s.Deliver(context.Background(), sampleSubmission()))

	entries := logs.FilterMessage("collected form data").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "f1", fields["form_id"])
	require.JSONEq(t, `{"name":"Ada","hobbies":["chess"]}`, fields["values"].(string))
}

func TestHTTPSinkPostsPayload(t *testing.T) {
	var got map[string]any
	var contentType, token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		token = r.Header.Get("X-Token")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := HTTP(srv.URL, WithHTTPClient(srv.Client()), WithHeader("X-Token", "abc"))
	require.NoError(t, s.Deliver(context.Background(), sampleSubmission()))

	want := map[string]any{"name": "Ada", "hobbies": []any{"chess"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "application/json", contentType)
	require.Equal(t, "abc", token)
}

func TestHTTPSinkRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := HTTP(srv.URL).Deliver(context.Background(), sampleSubmission())
	require.ErrorContains(t, err, "unexpected status 502")
}

func TestMultiCallsEverySink(t *testing.T) {
	boom := errors.New("boom")
	var calls []string
	s := Multi(
		Func(func(context.Context, Submission) error { calls = append(calls, "a"); return boom }),
		nil,
		Func(func(context.Context, Submission) error { calls = append(calls, "b"); return nil }),
	)

	err := s.Deliver(context.Background(), sampleSubmission())
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"a", "b"}, calls)
}
