package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = '-'

type Option func(*config)

type config struct {
	maxLength    int
	replacements *strings.Replacer
	suffixLength int
}

// MaxLength caps the slug length in bytes, suffix included. Slugs are ASCII,
// so bytes and characters agree.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Replace applies old/new pairs before slugification, e.g. "&", "and".
func Replace(oldnew ...string) Option {
	return func(c *config) {
		c.replacements = strings.NewReplacer(oldnew...)
	}
}

// WithSuffix appends a random lowercase alphanumeric suffix of length n.
func WithSuffix(n int) Option {
	return func(c *config) {
		c.suffixLength = n
	}
}

// foldDiacritics turns "Crème Brûlée" into "Creme Brulee".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Make converts s into a lowercase slug of ASCII letters, digits and single
// hyphens, with no leading or trailing hyphen. Characters without an ASCII
// form act as separators.
func Make(s string, opts ...Option) string {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.replacements != nil {
		s = cfg.replacements.Replace(s)
	}
	s = foldDiacritics(s)

	limit := cfg.maxLength
	if cfg.suffixLength > 0 && limit > 0 {
		limit -= cfg.suffixLength + 1
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingSep = b.Len() > 0
			continue
		}

		need := 1
		if pendingSep {
			need++
		}
		if cfg.maxLength > 0 && b.Len()+need > limit {
			break
		}
		if pendingSep {
			b.WriteByte(separator)
			pendingSep = false
		}
		b.WriteRune(r)
	}

	result := b.String()
	if cfg.suffixLength <= 0 {
		return result
	}

	n := cfg.suffixLength
	if cfg.maxLength > 0 && n > cfg.maxLength {
		n = cfg.maxLength
	}
	suffix := randomSuffix(n)
	if result == "" || (cfg.maxLength > 0 && limit <= 0) {
		return suffix
	}
	return result + string(separator) + suffix
}

func randomSuffix(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = chars[i%len(chars)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b)
}
