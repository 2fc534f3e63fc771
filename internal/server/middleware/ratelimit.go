package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// RateLimiter ограничивает частоту запросов по фиксированным окнам:
// время делится на интервалы длиной window, в каждом интервале для
// ключа допускается не более limit запросов. Счетчик сбрасывается
// на границе окна.
type RateLimiter struct {
	windows  map[string]*window
	logger   *slog.Logger
	cleanupC chan struct{}
	limit    int
	interval time.Duration
	now      func() time.Time
	mu       sync.Mutex
}

// window представляет счетчик запросов одного ключа в текущем окне
type window struct {
	start time.Time
	count int
}

// NewRateLimiter создает новый rate limiter
// limit - максимальное количество запросов за окно
// interval - длина окна (например, 1 минута)
func NewRateLimiter(limit int, interval time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		windows:  make(map[string]*window),
		limit:    limit,
		interval: interval,
		logger:   logger,
		cleanupC: make(chan struct{}),
		now:      time.Now,
	}

	// Периодическая очистка завершившихся окон
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет окна, вышедшие за interval
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.interval * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleWindows()
		case <-rl.cleanupC:
			return
		}
	}
}

func (rl *RateLimiter) cleanupStaleWindows() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.windows, key)
		}
	}
}

// Stop останавливает cleanup goroutine
func (rl *RateLimiter) Stop() {
	close(rl.cleanupC)
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	w, exists := rl.windows[key]
	if !exists || now.Sub(w.start) >= rl.interval {
		// Новое окно: счетчик начинается заново
		rl.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= rl.limit {
		return false
	}

	w.count++
	return true
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов
func RateLimitMiddleware(limit int, interval time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(limit, interval, logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Используем IP адрес как ключ
			key := getClientIP(r)

			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"ip", key,
					"method", r.Method,
					"path", r.URL.Path,
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded, please try again later"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Берем первый IP из списка (реальный клиент)
		for idx := 0; idx < len(xff); idx++ {
			if xff[idx] == ',' {
				return xff[:idx]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return r.RemoteAddr
}
