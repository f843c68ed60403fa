package inline

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/logfields"
)

// DefaultMaxAssetSize caps a single embedded file.
const DefaultMaxAssetSize = 10 << 20

// Native inlines local assets without external tools:
//   - link[rel=stylesheet][href] becomes a <style> element
//   - script[src] gets the file as its text content
//   - img[src] and link[rel=icon][href] become data: URIs
//
// References that are URLs, fragments, absolute paths outside baseDir or
// missing files are left as they are; a warning is logged for missing or
// oversized files.
type Native struct {
	maxAssetSize int64
	logger       *slog.Logger
}

// NativeOption configures a Native inliner.
type NativeOption func(*Native)

// WithMaxAssetSize overrides DefaultMaxAssetSize.
func WithMaxAssetSize(n int64) NativeOption {
	return func(i *Native) {
		if n > 0 {
			i.maxAssetSize = n
		}
	}
}

// WithLogger sets the logger receiving skipped-asset warnings.
func WithLogger(l *slog.Logger) NativeOption {
	return func(i *Native) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewNative creates a Native inliner.
func NewNative(opts ...NativeOption) *Native {
	n := &Native{
		maxAssetSize: DefaultMaxAssetSize,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Inline implements Inliner.
func (n *Native) Inline(ctx context.Context, page, baseDir string) (string, error) {
	if baseDir == "" {
		baseDir = "."
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	if err := n.walk(ctx, doc, absBase); err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return buf.String(), nil
}

func (n *Native) walk(ctx context.Context, node *html.Node, baseDir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if node.Type == html.ElementNode {
		switch node.DataAtom {
		case atom.Link:
			n.inlineLink(node, baseDir)
		case atom.Script:
			n.inlineScript(node, baseDir)
		case atom.Img:
			n.inlineDataURI(node, "src", baseDir)
		}
	}

	// Capture next before recursing: inlineLink replaces nodes in place.
	for c := node.FirstChild; c != nil; {
		next := c.NextSibling
		if err := n.walk(ctx, c, baseDir); err != nil {
			return err
		}
		c = next
	}
	return nil
}

func (n *Native) inlineLink(node *html.Node, baseDir string) {
	rel := strings.ToLower(getAttr(node, "rel"))
	switch {
	case hasToken(rel, "stylesheet"):
		content, ok := n.read(getAttr(node, "href"), baseDir)
		if !ok {
			return
		}
		style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
		if media := getAttr(node, "media"); media != "" {
			style.Attr = []html.Attribute{{Key: "media", Val: media}}
		}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: escapeEndTag(string(content), "style")})
		node.Parent.InsertBefore(style, node)
		node.Parent.RemoveChild(node)

	case hasToken(rel, "icon"):
		n.inlineDataURI(node, "href", baseDir)
	}
}

func (n *Native) inlineScript(node *html.Node, baseDir string) {
	src := getAttr(node, "src")
	content, ok := n.read(src, baseDir)
	if !ok {
		return
	}
	removeAttr(node, "src")
	for c := node.FirstChild; c != nil; c = node.FirstChild {
		node.RemoveChild(c)
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: escapeEndTag(string(content), "script")})
}

func (n *Native) inlineDataURI(node *html.Node, attr, baseDir string) {
	ref := getAttr(node, attr)
	content, ok := n.read(ref, baseDir)
	if !ok {
		return
	}
	setAttr(node, attr, dataURI(ref, content))
}

// read loads a local reference, reporting false when it must stay untouched.
func (n *Native) read(ref, baseDir string) ([]byte, bool) {
	if !fileutil.IsLocalReference(ref) {
		return nil, false
	}

	// Query strings and fragments are not part of the file name.
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	path := filepath.Join(baseDir, filepath.FromSlash(ref))
	if filepath.IsAbs(filepath.FromSlash(ref)) {
		path = filepath.Clean(filepath.FromSlash(ref))
	}
	path, ok := resolveContained(path, baseDir)
	if !ok {
		n.logger.Warn("skipping asset outside base directory", logfields.File(ref))
		return nil, false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		n.logger.Warn("skipping missing asset", logfields.File(ref))
		return nil, false
	}
	if info.Size() > n.maxAssetSize {
		n.logger.Warn("skipping oversized asset", logfields.File(ref), slog.Int64("size", info.Size()))
		return nil, false
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path contained in baseDir
	if err != nil {
		n.logger.Warn("skipping unreadable asset", logfields.File(ref), logfields.Error(err))
		return nil, false
	}
	return content, true
}

// dataURI encodes content with the MIME type derived from the file
// extension, or sniffed from the content when the extension is unknown.
func dataURI(name string, content []byte) string {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mediaType == "" {
		mediaType = http.DetectContentType(content)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// resolveContained returns path with symlinks resolved, and whether it lies
// under dir once dir's own symlinks are resolved too. A missing file keeps
// its unresolved path; reading it fails later.
func resolveContained(path, dir string) (string, bool) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	} else if resolved, err := filepath.EvalSymlinks(filepath.Dir(absPath)); err == nil {
		absPath = filepath.Join(resolved, filepath.Base(absPath))
	}
	return absPath, isPathUnderDir(absPath, absDir)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath, cleanDir)
}

// escapeEndTag keeps embedded text from closing its raw-text element.
func escapeEndTag(content, tag string) string {
	lower := strings.ToLower(content)
	needle := "</" + tag
	if !strings.Contains(lower, needle) {
		return content
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			b.WriteString(content)
			return b.String()
		}
		b.WriteString(content[:i])
		b.WriteString(`<\/`)
		content, lower = content[i+2:], lower[i+2:]
	}
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if f == token {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

var _ Inliner = (*Native)(nil)
