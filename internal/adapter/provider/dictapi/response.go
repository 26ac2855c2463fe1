package dictapi

// apiEntry is one entry of the /entries response. The service returns an
// array of entries, one per homograph.
type apiEntry struct {
	Word       string        `json:"word"`
	Dictionary string        `json:"dictionary"`
	Phonetics  []apiPhonetic `json:"phonetics"`
	Meanings   []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text string `json:"text"`
}

// apiMeaning groups the senses of one part of speech. Gender is set for
// nouns ("m", "f", "n" or spelled out).
type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Gender       string          `json:"gender"`
	Plural       string          `json:"plural"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// apiSearch is the /search response.
type apiSearch struct {
	Words []string `json:"words"`
}
