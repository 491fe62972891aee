package intent

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

var diacritics = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Colloquial shorthand seen in real conversations, rewritten to the full
// form the patterns expect. Applied per whole word after diacritic
// stripping.
var slang = map[string]string{
	"vlw":     "valeu",
	"obg":     "obrigado",
	"obgd":    "obrigado",
	"brigado": "obrigado",
	"pfv":     "por favor",
	"pf":      "por favor",
	"pls":     "por favor",
	"blz":     "beleza",
	"naum":    "nao",
	"ss":      "sim",
	"sloko":   "beleza",
	"qro":     "quero",
	"vc":      "voce",
	"tbm":     "tambem",
	"tb":      "tambem",
}

// Fold strips accents from already-lowercased text.
func Fold(text string) string {
	return diacritics.Replace(text)
}

// squeezeRepeats collapses runs of 3+ identical runes down to 2, so
// "muuuuito bommmm" becomes "muuito bomm".
func squeezeRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize prepares raw message text for pattern matching: lowercase,
// diacritics stripped, URLs removed, runs of 3+ identical characters
// collapsed to 2, colloquial shorthand expanded, everything that is not
// alphanumeric reduced to single spaces.
func Normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = urlRe.ReplaceAllString(t, " ")
	t = Fold(t)
	t = squeezeRepeats(t)
	t = nonAlnumRe.ReplaceAllString(t, " ")

	words := strings.Fields(t)
	for i, w := range words {
		if full, ok := slang[w]; ok {
			words[i] = full
		}
	}
	t = strings.Join(words, " ")

	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(t, " "))
}
