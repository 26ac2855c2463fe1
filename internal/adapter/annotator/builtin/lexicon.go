package builtin

import "github.com/heartmarshall/deutschkurs/internal/domain"

// lexicon maps lower-cased closed-class German words to their category.
// Open-class words are left to the heuristics in tagger.go.
func defaultLexicon() map[string]domain.Category {
	lex := make(map[string]domain.Category, 512)
	add := func(c domain.Category, words ...string) {
		for _, w := range words {
			lex[w] = c
		}
	}

	add(domain.CategoryDeterminer,
		"der", "die", "das", "den", "dem", "des",
		"ein", "eine", "einen", "einem", "einer", "eines",
		"kein", "keine", "keinen", "keinem", "keiner", "keines",
		"dieser", "diese", "dieses", "diesen", "diesem",
		"jeder", "jede", "jedes", "jeden", "jedem",
		"jener", "jene", "jenes", "jenen", "jenem",
		"welcher", "welche", "welches", "welchen", "welchem",
		"mein", "meine", "meinen", "meinem", "meiner", "meines",
		"dein", "deine", "deinen", "deinem", "deiner", "deines",
		"sein", "seine", "seinen", "seinem", "seiner", "seines",
		"ihr", "ihre", "ihren", "ihrem", "ihrer", "ihres",
		"unser", "unsere", "unseren", "unserem", "unserer", "unseres",
		"euer", "eure", "euren", "eurem", "eurer", "eures",
		"alle", "allen", "aller", "alles", "manche", "manchen", "einige", "einigen", "viele", "vielen",
	)

	add(domain.CategoryPronoun,
		"ich", "du", "er", "sie", "es", "wir",
		"mich", "dich", "sich", "uns", "euch",
		"mir", "dir", "ihm", "ihnen",
		"man", "jemand", "niemand", "etwas", "nichts", "wer", "wen", "wem", "was",
		"mancher", "jemanden",
	)

	add(domain.CategoryAdposition,
		"in", "an", "auf", "aus", "bei", "mit", "nach", "von", "zu",
		"über", "unter", "vor", "hinter", "neben", "zwischen",
		"durch", "für", "gegen", "ohne", "um", "bis", "seit",
		"wegen", "trotz", "statt", "gegenüber", "entlang", "ab", "außer",
		"im", "am", "zum", "zur", "vom", "beim", "ins", "ans", "aufs", "ums",
	)

	add(domain.CategoryCoordinatingConjunction,
		"und", "oder", "aber", "denn", "sondern", "sowie", "beziehungsweise",
	)

	add(domain.CategorySubordinatingConjunction,
		"dass", "weil", "wenn", "ob", "als", "obwohl", "damit", "bevor",
		"nachdem", "während", "sobald", "solange", "falls", "indem", "seitdem",
	)

	add(domain.CategoryAuxiliary,
		"bin", "bist", "ist", "sind", "seid", "war", "warst", "waren", "wart", "gewesen",
		"habe", "hast", "hat", "haben", "habt", "hatte", "hattest", "hatten", "hattet", "gehabt",
		"werde", "wirst", "wird", "werden", "werdet", "wurde", "wurdest", "wurden", "geworden",
		"kann", "kannst", "können", "könnt", "konnte", "konnten",
		"muss", "musst", "müssen", "müsst", "musste", "mussten",
		"darf", "darfst", "dürfen", "dürft", "durfte", "durften",
		"soll", "sollst", "sollen", "sollt", "sollte", "sollten",
		"will", "willst", "wollen", "wollt", "wollte", "wollten",
		"mag", "magst", "mögen", "möchte", "möchtest", "möchten",
		"wäre", "wären", "hätte", "hätten", "würde", "würden",
	)

	add(domain.CategoryAdverb,
		"auch", "noch", "schon", "nur", "immer", "nie", "niemals", "oft", "manchmal",
		"hier", "dort", "da", "jetzt", "heute", "morgen", "gestern", "bald", "dann",
		"wieder", "sehr", "gern", "gerne", "sofort", "vielleicht", "leider", "natürlich",
		"so", "wie", "wo", "wann", "warum", "wohin", "woher", "zusammen", "allein",
		"oben", "unten", "links", "rechts", "draußen", "drinnen", "zurück", "weg",
		"fast", "ganz", "etwa", "genau", "eigentlich", "trotzdem", "deshalb", "also",
	)

	add(domain.CategoryAdjective,
		"groß", "klein", "gut", "schlecht", "neu", "alt", "jung", "schön", "hässlich",
		"lang", "kurz", "hoch", "tief", "breit", "schmal", "schnell", "langsam",
		"warm", "kalt", "heiß", "teuer", "billig", "leicht", "schwer", "voll", "leer",
		"rot", "blau", "grün", "gelb", "schwarz", "weiß", "grau", "braun",
		"richtig", "falsch", "wichtig", "müde", "krank", "gesund", "froh", "traurig",
	)

	add(domain.CategoryParticle, "nicht", "ja", "doch", "mal", "eben", "halt")

	add(domain.CategoryInterjection,
		"hallo", "tschüss", "tschüs", "ach", "oh", "nein", "danke", "bitte", "servus", "na",
	)

	add(domain.CategoryNumeral,
		"null", "eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun",
		"zehn", "elf", "zwölf", "dreizehn", "zwanzig", "dreißig", "vierzig", "fünfzig",
		"hundert", "tausend",
	)

	return lex
}

// Suffixes of open-class words, checked on the lower-cased form after
// stripping an adjective inflection ending.
var (
	adjectiveSuffixes = []string{"lich", "ig", "isch", "bar", "sam", "los", "haft", "voll", "reich", "frei"}
	adverbSuffixes    = []string{"weise", "wärts", "mals"}
	inflections       = []string{"en", "er", "em", "es", "e"}
)
