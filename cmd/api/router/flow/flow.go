package flow

import (
	"context"

	"TubeFuss.com/cmd/api/handlers/pack"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/metrics"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	sentinelflow "github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pkg/errors"
)

// Resource is the sentinel resource guarding the whole API.
const Resource = "tubefuss-api"

// Init loads a reject-above-qps rule; qps <= 0 leaves flow control off.
func Init(qps float64) (bool, error) {
	if qps <= 0 {
		return false, nil
	}
	if err := sentinel.InitDefault(); err != nil {
		return false, errors.Wrap(err, "init sentinel failed")
	}
	_, err := sentinelflow.LoadRules([]*sentinelflow.Rule{{
		Resource:               Resource,
		TokenCalculateStrategy: sentinelflow.Direct,
		ControlBehavior:        sentinelflow.Reject,
		Threshold:              qps,
		StatIntervalInMs:       1000,
	}})
	return err == nil, errors.Wrap(err, "load sentinel rules failed")
}

func Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blocked := sentinel.Entry(Resource, sentinel.WithTrafficType(base.Inbound))
		if blocked != nil {
			metrics.RateLimited.Inc()
			pack.SendError(c, errno.TooManyRequestsErr)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
