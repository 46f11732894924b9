package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/R3E-Network/algorithm_service/internal/middleware"
)

// limiterIdleTTL is how long a client may stay quiet before its bucket is dropped.
const limiterIdleTTL = 10 * time.Minute

// limiterJanitor periodically evicts idle rate limiter buckets.
type limiterJanitor struct {
	cron    *cron.Cron
	limiter *middleware.RateLimiter
	log     logrus.FieldLogger
}

func newLimiterJanitor(schedule string, limiter *middleware.RateLimiter, log logrus.FieldLogger) (*limiterJanitor, error) {
	j := &limiterJanitor{
		cron:    cron.New(),
		limiter: limiter,
		log:     log.WithField("component", "ratelimit-janitor"),
	}
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return nil, fmt.Errorf("rate limit cleanup schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *limiterJanitor) Name() string { return "ratelimit-janitor" }

func (j *limiterJanitor) Start(context.Context) error {
	j.cron.Start()
	return nil
}

func (j *limiterJanitor) Stop(ctx context.Context) error {
	select {
	case <-j.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *limiterJanitor) sweep() {
	if removed := j.limiter.Cleanup(limiterIdleTTL); removed > 0 {
		j.log.WithField("removed", removed).Debug("evicted idle rate limiters")
	}
}
