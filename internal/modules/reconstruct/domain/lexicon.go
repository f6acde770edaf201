package domain

// lexicon glosses the vocabulary the demo corpus and exemplar pool draw on.
var lexicon = map[string]Translation{
	"गच्छति":  {Literal: "goes", Idiomatic: "he/she goes"},
	"तिष्ठति": {Literal: "stands", Idiomatic: "he/she stands or stays"},
	"रक्षति":  {Literal: "protects", Idiomatic: "he/she protects"},
	"भवति":    {Literal: "becomes", Idiomatic: "he/she becomes"},
	"पठति":    {Literal: "reads", Idiomatic: "he/she reads"},
	"वदति":    {Literal: "speaks", Idiomatic: "he/she speaks"},
	"राम":     {Literal: "Rama", Idiomatic: "Rama"},
	"सीता":    {Literal: "Sita", Idiomatic: "Sita"},
	"वनं":     {Literal: "forest (acc.)", Idiomatic: "to the forest"},
	"गृहे":    {Literal: "in the house", Idiomatic: "at home"},
	"धर्मः":   {Literal: "dharma (nom.)", Idiomatic: "righteousness"},
}

// Gloss returns the dictionary translation for a word, or a bracketed echo
// when the word is outside the lexicon.
func Gloss(word string) Translation {
	if t, ok := lexicon[word]; ok {
		return t
	}
	return Translation{Literal: "[" + word + "]", Idiomatic: "[" + word + "]"}
}
