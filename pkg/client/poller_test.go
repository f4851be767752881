package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPollTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, NewSessionStore(filepath.Join(t.TempDir(), "session.json")))
}

func TestWaitForAnalysis_ReturnsMealOnceAnalyzed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	apiClient := newPollTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.Write([]byte(`{"id":"m1","status":"UPLOADED"}`))
		case 2:
			w.Write([]byte(`{"id":"m1","status":"PROCESSING"}`))
		default:
			w.Write([]byte(`{"id":"m1","status":"ANALYZED","nutritionSummary":{"totalCalories":133.5}}`))
		}
	}))

	poller := NewPollerWithBudget(apiClient, time.Millisecond, 10)
	meal, err := poller.WaitForAnalysis(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, MealStatusAnalyzed, meal.Status)
	require.NotNil(t, meal.NutritionSummary)
	assert.Equal(t, 133.5, meal.NutritionSummary.TotalCalories)
	assert.Equal(t, int64(3), calls.Load())
}

func TestWaitForAnalysis_FailedMealSurfacesServerReason(t *testing.T) {
	t.Parallel()

	apiClient := newPollTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"m1","status":"FAILED","errorMessage":"low confidence"}`))
	}))

	poller := NewPollerWithBudget(apiClient, time.Millisecond, 10)
	_, err := poller.WaitForAnalysis(context.Background(), "m1")

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.Equal(t, "low confidence", analysisErr.Message)
}

func TestWaitForAnalysis_TimesOutAfterExactAttemptBudget(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	apiClient := newPollTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"id":"m1","status":"PROCESSING"}`))
	}))

	poller := NewPollerWithBudget(apiClient, time.Millisecond, 5)
	_, err := poller.WaitForAnalysis(context.Background(), "m1")

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 5, timeoutErr.Attempts)
	assert.Equal(t, int64(5), calls.Load(), "expected exactly one request per attempt")
}

func TestWaitForAnalysis_RetriesNetworkFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Drop the connection to force a transport error.
			hijacker, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hijacker.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(`{"id":"m1","status":"ANALYZED"}`))
	}))
	t.Cleanup(flaky.Close)

	apiClient := New(flaky.URL, NewSessionStore(filepath.Join(t.TempDir(), "session.json")))
	poller := NewPollerWithBudget(apiClient, time.Millisecond, 10)

	meal, err := poller.WaitForAnalysis(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, MealStatusAnalyzed, meal.Status)
	assert.Equal(t, int64(2), calls.Load())
}

func TestWaitForAnalysis_NonNetworkErrorsStopThePoll(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	apiClient := newPollTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"meal not found"}`)
	}))

	poller := NewPollerWithBudget(apiClient, time.Millisecond, 10)
	_, err := poller.WaitForAnalysis(context.Background(), "m1")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, int64(1), calls.Load(), "expected no retry after a definitive error")
}

func TestWaitForAnalysis_HonorsContextCancellation(t *testing.T) {
	t.Parallel()

	apiClient := newPollTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"m1","status":"PROCESSING"}`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPollerWithBudget(apiClient, time.Hour, 10)

	done := make(chan error, 1)
	go func() {
		_, err := poller.WaitForAnalysis(ctx, "m1")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}
