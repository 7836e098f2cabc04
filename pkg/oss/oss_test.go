package oss

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:9000/images/6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6.png", "6f1c2a8e-3b4d-4c5e-9f60-718293a4b5c6"},
		{"https://cdn.example.com/videos/abc.mp4?token=1", "abc"},
		{"https://cdn.example.com/videos/noext", "noext"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := PublicIDFromURL(tt.url); got != tt.want {
				t.Errorf("PublicIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestBucketByResourceType(t *testing.T) {
	s := &MinioStorage{opts: Options{ImageBucket: "images", VideoBucket: "videos"}}
	if s.bucket(ResourceVideo) != "videos" || s.bucket(ResourceImage) != "images" {
		t.Error("resource type routed to the wrong bucket")
	}
}
