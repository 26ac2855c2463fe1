package filecache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

// Top-level keys of the persisted cache.
const (
	keyWords  = "words"
	keyTopics = "topics"
)

// Marshal encodes the cache as indented JSON:
//
//	{"topics": {topic: [key...]}, "words": {key: {title, part_of_speech, article, topic, ...}}}
//
// Map keys come out sorted, so equal caches encode to equal bytes. Text is
// written as is: "<", ">" and "&" are not escaped.
func Marshal(c *domain.Cache) ([]byte, error) {
	doc := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		doc[k] = v
	}

	words := make(map[string]map[string]any, len(c.Words))
	for key, e := range c.Words {
		words[key] = encodeEntry(e)
	}
	doc[keyWords] = words
	doc[keyTopics] = c.TopicWords()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("filecache: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeEntry(e *domain.VocabularyEntry) map[string]any {
	m := make(map[string]any, len(e.Attributes)+4)
	for k, v := range e.Attributes {
		m[k] = v
	}
	topics := e.Topics
	if topics == nil {
		topics = []string{}
	}
	m[domain.KeyTitle] = e.Title
	m[domain.KeyPartOfSpeech] = e.PartOfSpeech
	m[domain.KeyArticle] = e.Article
	m[domain.KeyTopics] = topics
	return m
}

// Unmarshal decodes a persisted cache. Input that is not a JSON object with
// both "words" and "topics" objects fails with domain.ErrCorruptCache.
func Unmarshal(data []byte) (*domain.Cache, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCache, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: not an object", domain.ErrCorruptCache)
	}

	rawWords, ok := doc[keyWords]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrCorruptCache, keyWords)
	}
	rawTopics, ok := doc[keyTopics]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", domain.ErrCorruptCache, keyTopics)
	}

	var words map[string]map[string]json.RawMessage
	if err := json.Unmarshal(rawWords, &words); err != nil || words == nil {
		return nil, fmt.Errorf("%w: %q is not an object", domain.ErrCorruptCache, keyWords)
	}
	var topics map[string]json.RawMessage
	if err := json.Unmarshal(rawTopics, &topics); err != nil || topics == nil {
		return nil, fmt.Errorf("%w: %q is not an object", domain.ErrCorruptCache, keyTopics)
	}

	c := domain.NewCache()
	for key, fields := range words {
		e, err := decodeEntry(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: word %q: %v", domain.ErrCorruptCache, key, err)
		}
		if e.Title == "" {
			e.Title = key
		}
		c.Words[key] = e
	}
	for name := range topics {
		c.RegisterTopic(name)
	}
	for k, v := range doc {
		if k == keyWords || k == keyTopics {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[k] = compact(v)
	}
	return c, nil
}

func decodeEntry(fields map[string]json.RawMessage) (*domain.VocabularyEntry, error) {
	e := &domain.VocabularyEntry{}
	for k, raw := range fields {
		var err error
		switch k {
		case domain.KeyTitle:
			err = decodeString(raw, &e.Title)
		case domain.KeyPartOfSpeech:
			err = decodeString(raw, &e.PartOfSpeech)
		case domain.KeyArticle:
			err = decodeString(raw, &e.Article)
		case domain.KeyTopics:
			err = json.Unmarshal(raw, &e.Topics)
		default:
			if e.Attributes == nil {
				e.Attributes = make(map[string]json.RawMessage)
			}
			e.Attributes[k] = compact(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("field %q: %v", k, err)
		}
	}
	// Files edited by hand may carry unsorted or repeated topics.
	slices.Sort(e.Topics)
	e.Topics = slices.Compact(e.Topics)
	if e.Topics == nil {
		e.Topics = []string{}
	}
	return e, nil
}

// decodeString accepts a JSON string or null.
func decodeString(raw json.RawMessage, dst *string) error {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	if s != nil {
		*dst = *s
	}
	return nil
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
