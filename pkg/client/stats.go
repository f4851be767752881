package client

import (
	"context"
	"net/http"
	"net/url"
)

func (client *Client) TodayStats(ctx context.Context) (DailyStats, error) {
	stats := DailyStats{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/stats/today", nil, &stats); err != nil {
		return DailyStats{}, err
	}
	return stats, nil
}

// DailyStatsFor fetches the dashboard for a specific day, date in YYYY-MM-DD.
func (client *Client) DailyStatsFor(ctx context.Context, date string) (DailyStats, error) {
	values := url.Values{}
	values.Set("date", date)

	stats := DailyStats{}
	if err := client.doJSON(ctx, http.MethodGet, "/api/stats/daily?"+values.Encode(), nil, &stats); err != nil {
		return DailyStats{}, err
	}
	return stats, nil
}
