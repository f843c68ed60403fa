package heading

import "testing"

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "single word", title: "Coffee", want: "coffee"},
		{name: "space becomes hyphen", title: "A b", want: "a-b"},
		{name: "non-ASCII letter is a separator", title: "passwörter", want: "passw-rter"},
		{name: "runs collapse", title: "a  --  b", want: "a-b"},
		{name: "leading and trailing separators trimmed", title: "  Hello, World!  ", want: "hello-world"},
		{name: "digits kept", title: "Step 2: Install v1.20", want: "step-2-install-v1-20"},
		{name: "underscore is a separator", title: "black_tea", want: "black-tea"},
		{name: "only punctuation", title: "?!", want: ""},
		{name: "empty", title: "", want: ""},
		{name: "only non-ASCII", title: "日本語", want: ""},
		{name: "mixed case", title: "HTTP Server", want: "http-server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugify_AlphabetOnly(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"abc", "A-B-C", "x1y2", "--a--"} {
		got := Slugify(title)
		for i := 0; i < len(got); i++ {
			c := got[i]
			if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
				t.Errorf("Slugify(%q) = %q contains %q", title, got, c)
			}
		}
		if len(got) > 0 && (got[0] == '-' || got[len(got)-1] == '-') {
			t.Errorf("Slugify(%q) = %q has untrimmed hyphen", title, got)
		}
	}
}
