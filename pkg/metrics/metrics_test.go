package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/videos", "200"))
	RecordAPIRequest("GET", "/api/v1/videos", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/videos", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordMediaOperation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{name: "success", result: "success"},
		{name: "failure", err: errors.New("boom"), result: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MediaOperations.WithLabelValues("upload", "image", tt.result)
			before := testutil.ToFloat64(c)
			RecordMediaOperation("upload", "image", tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordToggle(t *testing.T) {
	on := ToggleTotal.WithLabelValues("like", "on")
	off := ToggleTotal.WithLabelValues("like", "off")
	onBefore, offBefore := testutil.ToFloat64(on), testutil.ToFloat64(off)
	RecordToggle("like", true)
	RecordToggle("like", false)
	if testutil.ToFloat64(on) != onBefore+1 || testutil.ToFloat64(off) != offBefore+1 {
		t.Error("toggle counters not incremented")
	}
}
