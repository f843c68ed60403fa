package assets

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "styles", "mystyle.css", "/* mine */")
	writeAsset(t, tmpDir, "styles", "default.css", "/* override */")
	writeAsset(t, tmpDir, "templates", "print.html", "<p>print</p>")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	embedded := NewEmbeddedLoader()
	embeddedPlain, _ := embedded.LoadStyle("plain")
	embeddedPage, _ := embedded.LoadTemplate(DefaultTemplateName)

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{name: "custom only style", load: resolver.LoadStyle, asset: "mystyle", want: "/* mine */"},
		{name: "custom overrides embedded", load: resolver.LoadStyle, asset: "default", want: "/* override */"},
		{name: "falls back to embedded style", load: resolver.LoadStyle, asset: "plain", want: embeddedPlain},
		{name: "custom template", load: resolver.LoadTemplate, asset: "print", want: "<p>print</p>"},
		{name: "falls back to embedded template", load: resolver.LoadTemplate, asset: DefaultTemplateName, want: embeddedPage},
		{name: "missing everywhere", load: resolver.LoadStyle, asset: "nonexistent-xyz", wantErr: ErrStyleNotFound},
		{name: "validation errors are not fallen back", load: resolver.LoadTemplate, asset: "../page", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("load(%q) error = %v", tt.asset, err)
			}
			if got != tt.want {
				t.Errorf("load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{err: fmt.Errorf("%w: x", ErrStyleNotFound), want: true},
		{err: fmt.Errorf("%w: x", ErrTemplateNotFound), want: true},
		{err: ErrInvalidAssetName, want: false},
		{err: ErrAssetRead, want: false},
	}

	for _, tt := range tests {
		if got := isNotFoundError(tt.err); got != tt.want {
			t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
