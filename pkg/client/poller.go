package client

import (
	"context"
	"errors"
	"time"
)

const (
	// 60 attempts at 2s covers a two minute analysis window.
	defaultPollInterval = 2 * time.Second
	defaultPollAttempts = 60
)

// Poller watches an uploaded meal until its analysis reaches a terminal
// status. Transient network failures consume an attempt and are retried;
// every other error stops the poll immediately.
type Poller struct {
	client   *Client
	interval time.Duration
	attempts int
}

func NewPoller(client *Client) *Poller {
	return &Poller{
		client:   client,
		interval: defaultPollInterval,
		attempts: defaultPollAttempts,
	}
}

// NewPollerWithBudget overrides the poll cadence, for callers that know the
// analysis backend's latency.
func NewPollerWithBudget(client *Client, interval time.Duration, attempts int) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if attempts <= 0 {
		attempts = defaultPollAttempts
	}
	return &Poller{client: client, interval: interval, attempts: attempts}
}

// WaitForAnalysis polls until the meal is ANALYZED. A FAILED meal returns
// *AnalysisError with the server's reason; exhausting the attempt budget
// returns *TimeoutError.
func (poller *Poller) WaitForAnalysis(ctx context.Context, mealID string) (Meal, error) {
	for attempt := 1; attempt <= poller.attempts; attempt++ {
		meal, err := poller.client.GetMealAnalysis(ctx, mealID)
		if err != nil {
			var networkErr *NetworkError
			if !errors.As(err, &networkErr) {
				return Meal{}, err
			}
			// Transient failure, fall through to the wait.
		} else {
			switch meal.Status {
			case MealStatusAnalyzed:
				return meal, nil
			case MealStatusFailed:
				return Meal{}, &AnalysisError{Message: meal.ErrorMessage}
			}
		}

		if attempt == poller.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return Meal{}, ctx.Err()
		case <-time.After(poller.interval):
		}
	}

	return Meal{}, &TimeoutError{Attempts: poller.attempts}
}

// WaitForAnalysis polls with the default budget.
func (client *Client) WaitForAnalysis(ctx context.Context, mealID string) (Meal, error) {
	return NewPoller(client).WaitForAnalysis(ctx, mealID)
}
