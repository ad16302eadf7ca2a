package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mountain Yoga Retreat", "mountain-yoga-retreat"},
		{"  Forest   Silence  Weekend  ", "forest-silence-weekend"},
		{"7 Days of Calm!", "7-days-of-calm"},
		{"Détox & Wellness", "détox-wellness"},
		{"---", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDedupeSlug(t *testing.T) {
	t.Run("no collision", func(t *testing.T) {
		got := DedupeSlug("retreat", func(string) bool { return false })
		if got != "retreat" {
			t.Errorf("DedupeSlug = %q, want retreat", got)
		}
	})

	t.Run("appends suffix on collision", func(t *testing.T) {
		taken := map[string]bool{"retreat": true, "retreat-2": true}
		got := DedupeSlug("retreat", func(s string) bool { return taken[s] })
		if got != "retreat-3" {
			t.Errorf("DedupeSlug = %q, want retreat-3", got)
		}
	})

	t.Run("empty base falls back", func(t *testing.T) {
		got := DedupeSlug("", func(string) bool { return false })
		if got != "untitled" {
			t.Errorf("DedupeSlug = %q, want untitled", got)
		}
	})
}
