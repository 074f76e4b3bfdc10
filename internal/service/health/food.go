package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifetracker/config"
	"lifetracker/internal/model"
	"lifetracker/pkg/circuitbreaker"
	"lifetracker/pkg/metrics"
	"lifetracker/pkg/trace"
	"lifetracker/pkg/util"
)

const (
	defaultFoodAPIURL = "https://api.edamam.com/api/food-database/v2/parser"
	maxFoodResults    = 10
)

// FoodSearcher looks foods up by free text.
type FoodSearcher interface {
	Search(ctx context.Context, query string) ([]model.Meal, error)
}

// FoodClient queries an Edamam-compatible food database behind a circuit breaker.
type FoodClient struct {
	baseURL string
	appID   string
	appKey  string
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewFoodClient(cfg config.FoodAPIConfig, logger *zap.Logger) *FoodClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultFoodAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	cbCfg := circuitbreaker.DefaultConfig()
	cbCfg.OnStateChange = func(from, to circuitbreaker.State) {
		logger.Warn("Food API circuit breaker state changed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	return &FoodClient{
		baseURL: baseURL,
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
		client:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker(cbCfg),
		logger:  logger,
	}
}

// Configured reports whether credentials are present.
func (c *FoodClient) Configured() bool {
	return c != nil && c.appID != "" && c.appKey != ""
}

type edamamResponse struct {
	Hints []struct {
		Food struct {
			FoodID    string             `json:"foodId"`
			Label     string             `json:"label"`
			Nutrients map[string]float64 `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

func (c *FoodClient) Search(ctx context.Context, query string) ([]model.Meal, error) {
	start := time.Now()
	var meals []model.Meal
	err := c.breaker.Execute(func() error {
		var err error
		meals, err = c.search(ctx, query)
		return err
	})

	status := "ok"
	if err != nil {
		_, status = util.ClassifyError(err)
		if errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) {
			status = "circuit_open"
		}
	}
	metrics.RecordFoodSearchLatency(status, time.Since(start))
	return meals, err
}

func (c *FoodClient) search(ctx context.Context, query string) ([]model.Meal, error) {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("ingr", query)
	q.Set("lang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build food request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := trace.FromContext(ctx); id != "" {
		req.Header.Set(trace.HeaderName(), id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("food request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &util.HTTPStatusError{Service: "food-api", Code: resp.StatusCode}
	}

	var body edamamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode food response: %w", err)
	}

	meals := make([]model.Meal, 0, min(len(body.Hints), maxFoodResults))
	for _, h := range body.Hints {
		if len(meals) == maxFoodResults {
			break
		}
		n := h.Food.Nutrients
		meals = append(meals, model.Meal{
			ID:       h.Food.FoodID,
			Title:    h.Food.Label,
			Calories: math.Round(n["ENERC_KCAL"]),
			Protein:  math.Round(n["PROCNT"]),
			Carbs:    math.Round(n["CHOCDF"]),
			Fat:      math.Round(n["FAT"]),
			Fiber:    math.Round(n["FIBTG"]),
		})
	}
	return meals, nil
}

// catalog answers searches when no food API is configured or it fails.
var catalog = []model.Meal{
	{ID: "1", Title: "Grilled Chicken Breast", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0},
	{ID: "2", Title: "Salmon Fillet", Calories: 208, Protein: 25, Carbs: 0, Fat: 12, Fiber: 0},
	{ID: "3", Title: "Brown Rice", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8},
	{ID: "4", Title: "Broccoli", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6},
	{ID: "5", Title: "Sweet Potato", Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1, Fiber: 3},
	{ID: "6", Title: "Greek Yogurt", Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.5, Fiber: 0},
	{ID: "7", Title: "Oatmeal", Calories: 68, Protein: 2.4, Carbs: 12, Fat: 1.4, Fiber: 1.7},
	{ID: "8", Title: "Banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6},
	{ID: "9", Title: "Eggs", Calories: 74, Protein: 6.3, Carbs: 0.6, Fat: 5.3, Fiber: 0},
	{ID: "10", Title: "Quinoa", Calories: 120, Protein: 4.4, Carbs: 22, Fat: 1.9, Fiber: 2.8},
}

func searchCatalog(query string) []model.Meal {
	query = strings.ToLower(query)
	out := make([]model.Meal, 0)
	for _, m := range catalog {
		if strings.Contains(strings.ToLower(m.Title), query) {
			out = append(out, m)
		}
	}
	return out
}

func catalogMeal(id string) (model.Meal, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return model.Meal{}, false
}
