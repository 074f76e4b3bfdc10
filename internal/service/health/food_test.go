package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/pkg/circuitbreaker"
	"lifetracker/pkg/trace"
)

func TestFoodClientParsesHints(t *testing.T) {
	var gotTrace, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = r.Header.Get(trace.HeaderName())
		gotQuery = r.URL.Query().Get("ingr")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hints":[
			{"food":{"foodId":"food_1","label":"Apple","nutrients":{"ENERC_KCAL":52.4,"PROCNT":0.3,"CHOCDF":13.8,"FAT":0.2,"FIBTG":2.4}}},
			{"food":{"foodId":"food_2","label":"Apple juice","nutrients":{"ENERC_KCAL":46}}}
		]}`))
	}))
	defer srv.Close()

	c := NewFoodClient(config.FoodAPIConfig{BaseURL: srv.URL, AppID: "id", AppKey: "key", Timeout: time.Second}, zap.NewNop())
	require.True(t, c.Configured())

	ctx := trace.WithContext(context.Background(), "trace-123")
	meals, err := c.Search(ctx, "green apple")
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "food_1", meals[0].ID)
	assert.Equal(t, 52.0, meals[0].Calories)
	assert.Equal(t, 14.0, meals[0].Carbs)
	assert.Equal(t, 0.0, meals[1].Protein)
	assert.Equal(t, "trace-123", gotTrace)
	assert.Equal(t, "green apple", gotQuery)
}

func TestFoodClientOpensBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewFoodClient(config.FoodAPIConfig{BaseURL: srv.URL, AppID: "id", AppKey: "key"}, zap.NewNop())
	threshold := circuitbreaker.DefaultConfig().FailureThreshold
	for i := 0; i < threshold; i++ {
		_, err := c.Search(context.Background(), "apple")
		require.Error(t, err)
	}
	assert.Equal(t, circuitbreaker.StateOpen, c.breaker.GetState())

	_, err := c.Search(context.Background(), "apple")
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, threshold, calls)
}

func TestFoodClientNotConfigured(t *testing.T) {
	assert.False(t, NewFoodClient(config.FoodAPIConfig{AppID: "id"}, zap.NewNop()).Configured())
}
