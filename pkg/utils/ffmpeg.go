package utils

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the media duration in seconds, 0 for still images.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe media")
	}
	var res probeResult
	if err = json.Unmarshal([]byte(out), &res); err != nil {
		return 0, errors.WithMessage(err, "Failed to decode probe output")
	}
	if res.Format.Duration == "" || res.Format.Duration == "N/A" {
		return 0, nil
	}
	duration, err := strconv.ParseFloat(res.Format.Duration, 64)
	if err != nil {
		return 0, errors.WithMessage(err, "Invalid duration")
	}
	return duration, nil
}
