package textutil

import "testing"

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"the.matrix.1999", "The Matrix"},
		{"Blade_Runner (1982)", "Blade Runner"},
		{"alien-1979-1080p-bluray-x264", "Alien"},
		{"Alpha", "Alpha"},
		{"  spaced   out  ", "Spaced Out"},
		{"1917", "1917"},
		{"", ""},
		{"...", "..."},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
