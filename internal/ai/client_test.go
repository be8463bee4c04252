package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskwise-ai/taskwise/internal/clierr"
)

func TestTaskAssistance(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var in AssistInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if in.Description != "Plan the garden" {
			t.Errorf("request description = %q", in.Description)
		}

		_ = json.NewEncoder(w).Encode(AssistResult{
			ApproachSuggestions: []string{"Sketch the beds first"},
			ImprovedDescription: "Plan the spring garden layout.",
			GeneratedSubtasks:   []string{"Measure the plot"},
			SuggestedEmoji:      "🌱",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-key")
	got, err := c.TaskAssistance(context.Background(), AssistInput{Description: "Plan the garden"})
	if err != nil {
		t.Fatal(err)
	}

	if gotPath != "/v1/task-assistance" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if got.SuggestedEmoji != "🌱" || len(got.GeneratedSubtasks) != 1 {
		t.Errorf("result = %+v", got)
	}
}

func TestPostWithoutBaseURL(t *testing.T) {
	c := New("", "")
	_, err := c.DailyMotivation(context.Background())
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.AIDisabled {
		t.Errorf("got %v, want code %s", err, clierr.AIDisabled)
	}
}

func TestErrorEnvelopeOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model overloaded"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.RandomTask(context.Background())
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.AIUnavailable {
		t.Fatalf("got %v, want code %s", err, clierr.AIUnavailable)
	}
}

func TestErrorEnvelopeOn4xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "image query required"})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.GenerateImage(context.Background(), ImageInput{TaskTitle: "x"})
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.AIUnavailable {
		t.Fatalf("got %v, want code %s", err, clierr.AIUnavailable)
	}
}

func TestRetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(MotivationResult{TipOrQuote: "Small steps add up."})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	got, err := c.DailyMotivation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if got.TipOrQuote != "Small steps add up." {
		t.Errorf("result = %+v", got)
	}
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.DailyMotivation(context.Background())
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) || cliErr.Code != clierr.AIUnavailable {
		t.Fatalf("got %v, want code %s", err, clierr.AIUnavailable)
	}
	if calls != maxRetries {
		t.Errorf("calls = %d, want %d", calls, maxRetries)
	}
}

func TestContextCancelStopsRetrying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, "")
	_, err := c.DailyMotivation(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
