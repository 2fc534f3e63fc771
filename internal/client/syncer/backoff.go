package syncer

// Параметры экспоненциального backoff.
// Детерминированный (без jitter): очередь принадлежит одному клиенту,
// thundering herd от множества producers здесь невозможен.
const (
	backoffBaseMs int64 = 1000
	backoffMaxMs  int64 = 60000
)

// backoffDelay возвращает задержку в миллисекундах перед следующей
// попыткой после retryCount неудачных: min(base * 2^retryCount, max).
func backoffDelay(retryCount int) int64 {
	if retryCount < 0 {
		retryCount = 0
	}
	// 1000 * 2^6 = 64000 > 60000, дальше сдвигать нет смысла
	if retryCount >= 6 {
		return backoffMaxMs
	}

	delay := backoffBaseMs << uint(retryCount)
	if delay > backoffMaxMs {
		return backoffMaxMs
	}
	return delay
}
