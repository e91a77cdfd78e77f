package sanitize

import "regexp"

// DefaultMaxStringLength is the fallback string length cap when the
// configuration does not provide one.
const DefaultMaxStringLength = 10000

// markupPatterns match embedded markup that is stripped (not rejected)
// from incoming strings: script-capable tags, the javascript: scheme,
// and inline event handlers.
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
	regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`),
	regexp.MustCompile(`(?is)<object\b[^>]*>.*?</object\s*>`),
	regexp.MustCompile(`(?is)<embed\b[^>]*/?>`),
	regexp.MustCompile(`(?is)</?(?:script|iframe|object|embed)\b[^>]*>`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`),
}

// injectionPatterns match SQL injection signatures. A match rejects the
// request outright: keyword co-occurrences, comment terminators and
// quote-based tautologies have no safe rewrite.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)\bunion\b.{0,200}\bselect\b`),
	regexp.MustCompile(`(?is)\binsert\b\s+\binto\b`),
	regexp.MustCompile(`(?is)\bupdate\b.{1,200}\bset\b`),
	regexp.MustCompile(`(?is)\bdelete\b\s+\bfrom\b`),
	regexp.MustCompile(`(?is)\bdrop\b\s+\btable\b`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`(?i)['"]\s*or\s*['"]?[\w\s]*['"]?\s*=`),
}

// dangerousKeys is the case-insensitive denylist of record keys that
// indicate a prototype-pollution attempt. Keys are stored lowercase.
var dangerousKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Policy is the immutable, process-wide sanitization policy. It is
// built once at startup and shared by reference across all request
// workers; nothing mutates it afterwards.
type Policy struct {
	// MaxStringLength caps incoming string scalars. The length check
	// runs before any pattern scan, which bounds scanning cost against
	// a single adversarial string.
	MaxStringLength int

	markup    []*regexp.Regexp
	injection []*regexp.Regexp
	keys      map[string]struct{}
}

// NewPolicy builds the sanitization policy. maxStringLength <= 0 selects
// the default cap.
func NewPolicy(maxStringLength int) Policy {
	if maxStringLength <= 0 {
		maxStringLength = DefaultMaxStringLength
	}
	return Policy{
		MaxStringLength: maxStringLength,
		markup:          markupPatterns,
		injection:       injectionPatterns,
		keys:            dangerousKeys,
	}
}
