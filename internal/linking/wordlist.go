// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package linking

// Wordlist holds the words spoken codes are built from. Every entry is
// a short, common, unambiguous noun that survives ASR transcription and
// the normalizer's alphabet stripping unchanged, and none of them is a
// trigger or filler word users say around a code.
var Wordlist = []string{
	"арбуз",
	"берег",
	"ветер",
	"гвоздика",
	"гора",
	"дерево",
	"зебра",
	"зима",
	"инжир",
	"кактус",
	"камень",
	"карта",
	"кедр",
	"ключ",
	"компас",
	"корабль",
	"лампа",
	"лимон",
	"луна",
	"мост",
	"небо",
	"огурец",
	"океан",
	"орех",
	"остров",
	"парус",
	"пион",
	"поле",
	"радуга",
	"река",
	"рояль",
	"сапфир",
	"сосна",
	"спаржа",
	"тополь",
	"трава",
	"туман",
	"утес",
	"фонарь",
	"цветок",
	"чайка",
	"шар",
	"экран",
	"юмор",
	"якорь",
}

var wordSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(Wordlist))
	for _, w := range Wordlist {
		s[w] = struct{}{}
	}
	return s
}()

// IsWord reports whether a normalized token is a wordlist word.
func IsWord(token string) bool {
	_, ok := wordSet[token]
	return ok
}
