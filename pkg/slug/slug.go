package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type config struct {
	separator string
	maxLength int
	lowercase bool
}

// Option configures Make.
type Option func(*config)

// MaxLength limits the slug to n runes, cutting at the last separator that fits.
// n <= 0 disables the limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the string placed between words. Default "-".
func Separator(sep string) Option {
	return func(c *config) {
		c.separator = sep
	}
}

// Lowercase controls case folding. Default true.
func Lowercase(lower bool) Option {
	return func(c *config) {
		c.lowercase = lower
	}
}

// Letters that do not decompose into ASCII plus combining marks.
var specialLetters = map[rune]string{
	'ß': "ss", 'æ': "ae", 'Æ': "AE", 'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D", 'ł': "l", 'Ł': "L", 'œ': "oe", 'Œ': "OE",
	'þ': "th", 'Þ': "TH",
}

// Make converts s into an ASCII slug. Diacritics are folded, every run of
// other characters becomes one separator, and leading or trailing separators
// are dropped. The result may be empty.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pending := false
	emit := func(word string) {
		if pending && b.Len() > 0 {
			b.WriteString(cfg.separator)
		}
		pending = false
		if cfg.lowercase {
			word = strings.ToLower(word)
		}
		b.WriteString(word)
	}

	for _, r := range folded {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			emit(string(r))
		case specialLetters[r] != "":
			emit(specialLetters[r])
		default:
			pending = true
		}
	}

	return truncate(b.String(), cfg.separator, cfg.maxLength)
}

func truncate(s, sep string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	cut := string([]rune(s)[:maxLength])
	if sep != "" {
		if i := strings.LastIndex(cut, sep); i > 0 {
			cut = cut[:i]
		}
		cut = strings.TrimSuffix(cut, sep)
	}
	return cut
}
