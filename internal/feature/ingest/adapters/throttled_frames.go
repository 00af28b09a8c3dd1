package adapters

import (
	"context"

	"fintrack_backend/internal/feature/ingest/usecase"
	"fintrack_backend/internal/shared/ratelimiter"
)

// throttledFrames はFramesRepositoryの呼び出し頻度を制限するデコレータです。
// SECのフェアユースポリシー(毎秒10リクエストまで)を守るために使います。
type throttledFrames struct {
	inner   usecase.FramesRepository
	limiter ratelimiter.RateLimiterInterface
}

func NewThrottledFrames(inner usecase.FramesRepository, limiter ratelimiter.RateLimiterInterface) usecase.FramesRepository {
	return &throttledFrames{inner: inner, limiter: limiter}
}

var _ usecase.FramesRepository = (*throttledFrames)(nil)

func (t *throttledFrames) GetFrames(ctx context.Context, concept string, year, quarter int) (map[int]float64, error) {
	t.limiter.WaitIfNeeded()
	return t.inner.GetFrames(ctx, concept, year, quarter)
}
