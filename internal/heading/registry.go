package heading

import "strconv"

// firstSuffix is the suffix appended to the first colliding anchor.
const firstSuffix = 2

// Registry hands out unique anchors and records the outline of one document.
// It is not safe for concurrent use. Create one per conversion.
type Registry struct {
	anchors  map[string]struct{}
	outline  []Heading
	finished bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{anchors: make(map[string]struct{})}
}

// Register records a heading and returns its anchor.
//
// The anchor is Slugify(title) when that slug is unused. Otherwise the
// suffixes -2, -3, ... are tried in order until an unused candidate is found.
// An empty slug takes part in the same sequence, so a second heading without
// letters or digits gets the anchor "-2".
func (r *Registry) Register(level Level, title string) string {
	if r.finished {
		panic("heading: Register called after Finish")
	}

	base := Slugify(title)
	anchor := base
	for n := firstSuffix; r.has(anchor); n++ {
		anchor = base + "-" + strconv.Itoa(n)
	}

	r.anchors[anchor] = struct{}{}
	r.outline = append(r.outline, Heading{Level: level, Anchor: anchor, Title: title})
	return anchor
}

// Len returns the number of registered headings.
func (r *Registry) Len() int {
	return len(r.outline)
}

// Finish returns the outline in registration (document) order.
// The registry must not be used afterwards.
func (r *Registry) Finish() []Heading {
	if r.finished {
		panic("heading: Finish called twice")
	}
	r.finished = true
	outline := r.outline
	r.outline = nil
	r.anchors = nil
	return outline
}

func (r *Registry) has(anchor string) bool {
	_, ok := r.anchors[anchor]
	return ok
}
