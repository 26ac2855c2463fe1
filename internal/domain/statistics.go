package domain

// Statistics summarises a Cache for reporting. It is derived on demand and
// never persisted.
type Statistics struct {
	LenWords  int            `json:"len_words"`
	LenTopics int            `json:"len_topics"`
	LenPos    int            `json:"len_pos"`
	Topics    map[string]int `json:"topics"`
	Pos       map[string]int `json:"pos"`
}

// TopicCount is the number of words tagged with a topic.
type TopicCount struct {
	Name  string
	Words int
}
