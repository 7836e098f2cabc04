package tracer

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger installs a global jaeger tracer; the gorm opentracing plugin
// picks it up. An empty agent leaves the no-op tracer in place.
func InitJaeger(serviceName, agent string) (io.Closer, error) {
	if agent == "" {
		return nopCloser{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agent,
		},
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, errors.Wrap(err, "init jaeger tracer failed")
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer reporting to %s", agent)
	return closer, nil
}
