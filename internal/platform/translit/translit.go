package translit

import "strings"

// ToIAST romanizes Devanagari text into IAST. The mapping is table driven
// and deterministic; characters outside the table pass through unchanged.
func ToIAST(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		mapped, ok := iastTable[r]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if isConsonant(r) {
			// A virama suppresses the inherent vowel, a matra replaces it.
			if i+1 < len(runes) {
				next := runes[i+1]
				if next == virama {
					b.WriteString(mapped)
					i++
					continue
				}
				if m, isMatra := matraTable[next]; isMatra {
					b.WriteString(mapped)
					b.WriteString(m)
					i++
					continue
				}
			}
			b.WriteString(mapped)
			b.WriteString("a")
			continue
		}
		b.WriteString(mapped)
	}
	return b.String()
}

const virama = '्'

func isConsonant(r rune) bool {
	return r >= 'क' && r <= 'ह'
}

var iastTable = map[rune]string{
	'अ': "a", 'आ': "ā", 'इ': "i", 'ई': "ī", 'उ': "u", 'ऊ': "ū",
	'ऋ': "ṛ", 'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au",
	'क': "k", 'ख': "kh", 'ग': "g", 'घ': "gh", 'ङ': "ṅ",
	'च': "c", 'छ': "ch", 'ज': "j", 'झ': "jh", 'ञ': "ñ",
	'ट': "ṭ", 'ठ': "ṭh", 'ड': "ḍ", 'ढ': "ḍh", 'ण': "ṇ",
	'त': "t", 'थ': "th", 'द': "d", 'ध': "dh", 'न': "n",
	'प': "p", 'फ': "ph", 'ब': "b", 'भ': "bh", 'म': "m",
	'य': "y", 'र': "r", 'ल': "l", 'व': "v",
	'श': "ś", 'ष': "ṣ", 'स': "s", 'ह': "h",
	'ं': "ṃ", 'ः': "ḥ", 'ऽ': "'",
	'।': ".", '॥': "..",
}

var matraTable = map[rune]string{
	'ा': "ā", 'ि': "i", 'ी': "ī", 'ु': "u", 'ू': "ū",
	'ृ': "ṛ", 'े': "e", 'ै': "ai", 'ो': "o", 'ौ': "au",
}
