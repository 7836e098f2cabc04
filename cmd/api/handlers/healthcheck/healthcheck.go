package healthcheck

import (
	"context"
	"time"

	"TubeFuss.com/cmd/api/handlers/pack"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Pinger checks a backing service; nil means there is nothing to check.
type Pinger func(ctx context.Context) error

type Handler struct {
	started time.Time
	store   Pinger
}

func New(store Pinger) *Handler {
	return &Handler{started: time.Now(), store: store}
}

type Status struct {
	Status   string  `json:"status"`
	Uptime   string  `json:"uptime"`
	Store    string  `json:"store"`
	MemUsed  float64 `json:"memoryUsedPercent"`
	MemTotal uint64  `json:"memoryTotal"`
	CPU      float64 `json:"cpuPercent"`
}

// Check 健康检查: store ping plus host memory and cpu usage.
func (h *Handler) Check(ctx context.Context, c *app.RequestContext) {
	st := Status{
		Status: "ok",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
		Store:  "up",
	}
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.store(pingCtx); err != nil {
			hlog.CtxErrorf(ctx, "store ping failed: %v", err)
			st.Status, st.Store = "degraded", "down"
		}
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		st.MemUsed, st.MemTotal = vm.UsedPercent, vm.Total
	}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		st.CPU = pct[0]
	}

	status := consts.StatusOK
	if st.Status != "ok" {
		status = consts.StatusServiceUnavailable
	}
	pack.SendResponse(c, status, st, "Health check")
}
