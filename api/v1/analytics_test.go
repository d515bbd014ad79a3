package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/opsvix-api/lib/analytics"
)

func newAnalyticsAPI(t *testing.T, handler http.HandlerFunc) *testAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := analytics.NewClient(context.Background(), server.Client(), server.URL, "555")
	require.NoError(t, err)
	return newTestAPI(t, analytics.NewProviderFromClient(client))
}

func TestAnalyticsNotConfigured(t *testing.T) {
	api := newTestAPI(t, nil)

	for _, path := range []string{"/api/analytics/realtime", "/api/analytics/overview", "/api/analytics/contact-clicks"} {
		rec, body := api.admin(http.MethodGet, path, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code, path)
		require.Equal(t, "GA4 Analytics is not configured", body.Get("message").String())
		require.Equal(t, CodeAnalyticsNotConfigured, body.Get("code").String())
	}
}

func TestAnalyticsCountries(t *testing.T) {
	var request gjson.Result
	api := newAnalyticsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		request = gjson.ParseBytes(raw)
		_, _ = w.Write([]byte(`{"rows":[{"dimensionValues":[{"value":"Armenia"}],"metricValues":[{"value":"12"},{"value":"30"}]}]}`))
	})

	rec, body := api.admin(http.MethodGet, "/api/analytics/countries?startDate=7daysAgo&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `[{"country":"Armenia","users":12,"sessions":30}]`, body.Get("data").Raw)
	require.Equal(t, "7daysAgo", request.Get("dateRanges.0.startDate").String())
	require.Equal(t, "today", request.Get("dateRanges.0.endDate").String())
	require.Equal(t, int64(5), request.Get("limit").Int())

	rec, _ = api.admin(http.MethodGet, "/api/analytics/countries?limit=abc", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(20), request.Get("limit").Int())

	rec, body = api.admin(http.MethodGet, "/api/analytics/countries?endDate=someday", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, body.Get("success").Bool())
}

func TestAnalyticsQueryFailed(t *testing.T) {
	api := newAnalyticsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Exhausted property tokens"}}`))
	})

	rec, body := api.admin(http.MethodGet, "/api/analytics/devices", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, CodeAnalyticsQueryFailed, body.Get("code").String())
	require.Equal(t, "Exhausted property tokens", body.Get("message").String())
}

func TestAnalyticsRealtime(t *testing.T) {
	api := newAnalyticsAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows":[{"metricValues":[{"value":"4"}]}]}`))
	})

	rec, body := api.admin(http.MethodGet, "/api/analytics/realtime", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(4), body.Get("data.activeUsers").Int())
}
