package pprof

import (
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Load exposes net/http/pprof on addr; an empty addr disables it.
func Load(addr string) {
	if addr == "" {
		return
	}
	runtime.SetMutexProfileFraction(1)
	runtime.SetBlockProfileRate(1)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			hlog.Errorf("pprof server stopped: %v", err)
		}
	}()
}
