package domain

import (
	"encoding/json"
	"slices"
	"strings"
)

// Reserved keys of a persisted VocabularyEntry. Enrichment attributes with
// these names never overwrite the entry's own fields, except for KeyArticle.
const (
	KeyTitle        = "title"
	KeyPartOfSpeech = "part_of_speech"
	KeyArticle      = "article"
	KeyTopics       = "topic"
)

// VocabularyEntry is the cached metadata of one distinct word.
type VocabularyEntry struct {
	// Title is the surface form of the first observation, case preserved.
	Title string
	// PartOfSpeech is the Category label of the first observation.
	PartOfSpeech string
	// Article is der/die/das for nouns with a dictionary match, "" otherwise.
	Article string
	// Topics is sorted and free of duplicates.
	Topics []string
	// Attributes holds enrichment data and every other persisted key as raw
	// JSON, so values survive a load/save round trip untouched.
	Attributes map[string]json.RawMessage
}

// Attribute returns a string attribute. Non-string values report false.
func (e *VocabularyEntry) Attribute(key string) (string, bool) {
	raw, ok := e.Attributes[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// addTopic inserts topic at its sorted position. Returns false if present.
func (e *VocabularyEntry) addTopic(topic string) bool {
	i, found := slices.BinarySearch(e.Topics, topic)
	if found {
		return false
	}
	e.Topics = slices.Insert(e.Topics, i, topic)
	return true
}

// UpsertOutcome describes what Cache.Upsert did.
type UpsertOutcome int

const (
	UpsertUnchanged UpsertOutcome = iota
	UpsertCreated
	UpsertTopicAdded
)

func (o UpsertOutcome) String() string {
	switch o {
	case UpsertCreated:
		return "created"
	case UpsertTopicAdded:
		return "topic_added"
	default:
		return "unchanged"
	}
}

// Changed reports whether the cache was modified.
func (o UpsertOutcome) Changed() bool { return o != UpsertUnchanged }

// Cache is the aggregate root of the vocabulary: every known word keyed by
// CacheKey, plus the registered topic names.
//
// Topic membership is owned by VocabularyEntry.Topics. The topic -> words
// view is derived by TopicWords and never stored separately.
type Cache struct {
	Words map[string]*VocabularyEntry
	// Topics holds the names of registered topics, including topics
	// that have not contributed any word yet.
	Topics map[string]struct{}
	// Extra keeps unknown top-level keys of the persisted cache.
	Extra map[string]json.RawMessage
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		Words:  make(map[string]*VocabularyEntry),
		Topics: make(map[string]struct{}),
	}
}

// Len returns the number of cached words.
func (c *Cache) Len() int { return len(c.Words) }

// Get looks up the entry for a surface form.
func (c *Cache) Get(text string) (*VocabularyEntry, bool) {
	e, ok := c.Words[CacheKey(text)]
	return e, ok
}

// Has reports whether the surface form is already cached.
func (c *Cache) Has(text string) bool {
	_, ok := c.Words[CacheKey(text)]
	return ok
}

// Keys returns all cache keys in lexicographic order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.Words))
	for k := range c.Words {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RegisterTopic records a topic name. Returns false if it was known.
func (c *Cache) RegisterTopic(topic string) bool {
	if topic == "" {
		return false
	}
	if _, ok := c.Topics[topic]; ok {
		return false
	}
	c.Topics[topic] = struct{}{}
	return true
}

// TopicNames returns registered topics and topics referenced by any entry,
// sorted.
func (c *Cache) TopicNames() []string {
	seen := make(map[string]struct{}, len(c.Topics))
	for t := range c.Topics {
		seen[t] = struct{}{}
	}
	for _, e := range c.Words {
		for _, t := range e.Topics {
			seen[t] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for t := range seen {
		names = append(names, t)
	}
	slices.Sort(names)
	return names
}

// TopicWords derives the topic -> cache keys view. Every topic from
// TopicNames is present; word lists are sorted and never nil.
func (c *Cache) TopicWords() map[string][]string {
	view := make(map[string][]string)
	for _, t := range c.TopicNames() {
		view[t] = []string{}
	}
	// Keys are sorted, so each list comes out sorted.
	for _, k := range c.Keys() {
		for _, t := range c.Words[k].Topics {
			view[t] = append(view[t], k)
		}
	}
	return view
}

// Upsert merges one observation of a word into the cache.
//
// A new key creates an entry from text, category and attrs. A known key only
// gains topic: part of speech and enrichment of the first observation are
// kept, even if the word now appears with another category. Empty text or
// topic leaves the cache unchanged.
func (c *Cache) Upsert(topic, text string, category Category, attrs map[string]string) UpsertOutcome {
	key := CacheKey(text)
	if key == "" || topic == "" {
		return UpsertUnchanged
	}
	c.RegisterTopic(topic)

	if e, ok := c.Words[key]; ok {
		if e.addTopic(topic) {
			return UpsertTopicAdded
		}
		return UpsertUnchanged
	}

	e := &VocabularyEntry{
		Title:  strings.TrimSpace(text),
		Topics: []string{topic},
	}
	for k, v := range attrs {
		switch k {
		case KeyTitle, KeyPartOfSpeech, KeyTopics:
			continue
		case KeyArticle:
			e.Article = v
		default:
			if e.Attributes == nil {
				e.Attributes = make(map[string]json.RawMessage, len(attrs))
			}
			// Marshalling a string cannot fail.
			raw, _ := json.Marshal(v)
			e.Attributes[k] = raw
		}
	}
	e.PartOfSpeech = category.Label()
	c.Words[key] = e
	return UpsertCreated
}

// KeyedEntry pairs an entry with its cache key.
type KeyedEntry struct {
	Key string
	*VocabularyEntry
}

// Entries returns all entries in key order.
func (c *Cache) Entries() []KeyedEntry {
	keys := c.Keys()
	out := make([]KeyedEntry, len(keys))
	for i, k := range keys {
		out[i] = KeyedEntry{Key: k, VocabularyEntry: c.Words[k]}
	}
	return out
}
