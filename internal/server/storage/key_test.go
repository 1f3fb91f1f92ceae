package storage

import (
	"testing"
	"time"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			name:   "path with bucket prefix",
			raw:    "https://s3.ap-southeast-1.amazonaws.com/my-bucket/1700000000000_report.pdf",
			want:   "my-bucket/1700000000000_report.pdf",
			wantOK: true,
		},
		{
			name:   "virtual hosted style",
			raw:    "https://my-bucket.s3.ap-southeast-1.amazonaws.com/1700000000000_report.pdf",
			want:   "1700000000000_report.pdf",
			wantOK: true,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "relative url",
			raw:    "just/a/path",
			wantOK: false,
		},
		{
			name:   "unparsable",
			raw:    "https://bad url\x7f",
			wantOK: false,
		},
		{
			name:   "no path",
			raw:    "https://host.example",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyFromURL(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("KeyFromURL(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("KeyFromURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	tests := []struct {
		name string
		want string
	}{
		{"my report.pdf", "1700000000000_my_report.pdf"},
		{"plain.txt", "1700000000000_plain.txt"},
		{"spaced  twice.png", "1700000000000_spaced__twice.png"},
		{"noext", "1700000000000_noext"},
	}

	for _, tt := range tests {
		if got := BuildKey(tt.name, now); got != tt.want {
			t.Errorf("BuildKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
