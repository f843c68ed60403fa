package heading

import "strings"

// Slugify derives a URL-fragment-safe slug from a heading title.
//
// Every run of characters that is not an ASCII letter or digit collapses to a
// single hyphen, leading and trailing hyphens are trimmed and ASCII letters are
// lower-cased. Non-ASCII letters count as separators: "passwörter" becomes
// "passw-rter". The result may be empty.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			// Bytes of multi-byte runes are >= 0x80 and land here too.
			pendingHyphen = true
			continue
		}
		if pendingHyphen && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingHyphen = false
		b.WriteByte(c)
	}
	return b.String()
}
