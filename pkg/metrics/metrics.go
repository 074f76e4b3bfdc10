package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// 慢查询计数
	DBSlowQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of queries slower than the configured threshold",
		},
		[]string{"sql"},
	)

	DBSlowQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_slow_query_duration_seconds",
			Help:    "Duration of slow queries in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~12s
		},
	)

	// 认证事件：register, login_success, login_failure, login_throttled
	AuthEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events",
		},
		[]string{"event"},
	)

	// 实体写操作计数
	EntityMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_mutations_total",
			Help: "Total number of entity create/update/delete operations",
		},
		[]string{"entity", "op"},
	)

	// 外部食物搜索调用延迟（毫秒）
	FoodSearchLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "food_search_latency_ms",
			Help:    "Food search API call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
		[]string{"status"},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementSlowQuery 记录慢查询
func IncrementSlowQuery(sql string, duration time.Duration) {
	if len(sql) > 64 {
		sql = sql[:64]
	}
	DBSlowQueryCount.WithLabelValues(sql).Inc()
	DBSlowQueryDuration.Observe(duration.Seconds())
}

// IncrementAuthEvent 增加认证事件计数
func IncrementAuthEvent(event string) {
	AuthEventCount.WithLabelValues(event).Inc()
}

// IncrementEntityMutation 增加实体写操作计数
func IncrementEntityMutation(entity, op string) {
	EntityMutationCount.WithLabelValues(entity, op).Inc()
}

// RecordFoodSearchLatency 记录食物搜索延迟
func RecordFoodSearchLatency(status string, duration time.Duration) {
	FoodSearchLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}
