package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestHelperKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		val  string
	}{
		{"File", File("a.md"), KeyFile, "a.md"},
		{"Output", Output("a.html"), KeyOutput, "a.html"},
		{"Language", Language("go"), KeyLanguage, "go"},
		{"Theme", Theme("github"), KeyTheme, "github"},
		{"Headings", Headings(3), KeyHeadings, "3"},
		{"CodeBlocks", CodeBlocks(2), KeyCodeBlocks, "2"},
		{"Worker", Worker(1), KeyWorker, "1"},
		{"Duration", Duration(1500 * time.Microsecond), KeyDurationMS, "1.5"},
		{"Error", Error(errors.New("boom")), KeyError, "boom"},
		{"NilError", Error(nil), KeyError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.attr.Key != tt.key {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.key)
			}
			if got := tt.attr.Value.String(); got != tt.val {
				t.Errorf("value = %q, want %q", got, tt.val)
			}
		})
	}
}
