package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/internal/repository/memory"
	pkgconfig "lifetracker/pkg/config"
)

func newFoodServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hints":[{"food":{"foodId":"food_1","label":"Banana","nutrients":{"ENERC_KCAL":89}}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func memoryConfig(food config.FoodAPIConfig) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		DB:      pkgconfig.DBConfig{Driver: memory.Driver},
		JWT:     pkgconfig.JWTConfig{Secret: "app-test-secret", TTL: time.Hour},
		FoodAPI: food,
	}
}

func TestMealSearchWithoutCredentialsStaysLocal(t *testing.T) {
	srv, hits := newFoodServer(t)
	a, err := New(context.Background(), memoryConfig(config.FoodAPIConfig{BaseURL: srv.URL}), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	meals, err := a.Health.SearchMeals(context.Background(), "banana")
	require.NoError(t, err)
	assert.NotEmpty(t, meals)
	assert.Equal(t, int32(0), hits.Load())
}

func TestMealSearchWithCredentialsUsesFoodAPI(t *testing.T) {
	srv, hits := newFoodServer(t)
	a, err := New(context.Background(), memoryConfig(config.FoodAPIConfig{
		BaseURL: srv.URL,
		AppID:   "id",
		AppKey:  "key",
		Timeout: time.Second,
	}), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Health.SearchMeals(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMemoryDriverHasNoPool(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(config.FoodAPIConfig{}), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Pool)
	assert.Nil(t, a.Redis)
	assert.Equal(t, memory.Driver, a.Repos.Driver)
	assert.Equal(t, "test", a.Deps().Config.App.Env)
}
