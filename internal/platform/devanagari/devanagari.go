package devanagari

import "strings"

const vowels = "अआइईउऊऋएऐओऔ"

// ContainsDevanagari reports whether text has at least one rune in the
// Devanagari block.
func ContainsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 'ऀ' && r <= 'ॿ' {
			return true
		}
	}
	return false
}

// IsVowel reports whether r is an independent Devanagari vowel.
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

var matraVowels = map[rune]rune{
	'ा': 'आ', 'ि': 'इ', 'ी': 'ई', 'ु': 'उ', 'ू': 'ऊ',
	'ृ': 'ऋ', 'े': 'ए', 'ै': 'ऐ', 'ो': 'ओ', 'ौ': 'औ',
}

// FinalSound classifies the closing sound of a word. Independent vowels and
// matras resolve to the vowel they denote; a bare consonant carries the
// inherent 'अ'. The second result is false when the word does not end in a
// vowel sound (virama, anusvara, visarga, empty).
func FinalSound(token string) (rune, bool) {
	var last rune
	for _, r := range token {
		last = r
	}
	switch {
	case IsVowel(last):
		return last, true
	case matraVowels[last] != 0:
		return matraVowels[last], true
	case last >= 'क' && last <= 'ह':
		return 'अ', true
	default:
		return 0, false
	}
}

// InitialSound classifies the opening sound of a word; only independent
// vowels count as vowel-initial.
func InitialSound(token string) (rune, bool) {
	for _, r := range token {
		return r, IsVowel(r)
	}
	return 0, false
}

// StripPunctuation trims danda and double danda from word edges.
func StripPunctuation(word string) string {
	return strings.Trim(word, "।॥")
}
