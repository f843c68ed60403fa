package highlight

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		theme   string
		want    string
		wantErr error
	}{
		{name: "empty selects default", theme: "", want: DefaultTheme},
		{name: "known theme", theme: "monokai", want: "monokai"},
		{name: "name is case-insensitive", theme: "Monokai", want: "Monokai"},
		{name: "unknown theme", theme: "no-such-theme", wantErr: ErrThemeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := New(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) unexpected error: %v", tt.theme, err)
			}
			if h.Theme() != tt.want {
				t.Errorf("Theme() = %q, want %q", h.Theme(), tt.want)
			}
		})
	}
}

func TestHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	h, err := New("")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tests := []struct {
		name     string
		language string
		source   string
		contains []string
		excludes []string
	}{
		{
			name:     "go source gets styled spans",
			language: "go",
			source:   "package main\n",
			contains: []string{"<span", "package", "main"},
			excludes: []string{"<pre"},
		},
		{
			name:     "unknown language falls back to plain text",
			language: "definitely-not-a-language",
			source:   "just text\n",
			contains: []string{"just text"},
		},
		{
			name:     "empty language",
			language: "",
			source:   "x = 1\n",
			contains: []string{"x = 1"},
		},
		{
			name:     "markup in source is escaped",
			language: "html",
			source:   "<b>&</b>\n",
			contains: []string{"&lt;", "&amp;"},
			excludes: []string{"<b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := h.Highlight(tt.language, tt.source)
			if err != nil {
				t.Fatalf("Highlight(%q) error: %v", tt.language, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Highlight(%q) = %q, should contain %q", tt.language, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Highlight(%q) = %q, should not contain %q", tt.language, got, bad)
				}
			}
		})
	}
}

func TestHighlighter_CSS(t *testing.T) {
	t.Parallel()

	h, err := New("monokai")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	css := h.CSS()
	if !strings.Contains(css, "background-color: #") {
		t.Errorf("CSS() = %q, want a background colour", css)
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	names := Themes()
	if !slices.Contains(names, DefaultTheme) {
		t.Errorf("Themes() = %v, should contain %q", names, DefaultTheme)
	}
}
