// Package content holds the static menu pages shown by the bot.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"campusbot/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var defaultTopics []byte

// ErrUnknownTopic is returned for topics absent from the registry
var ErrUnknownTopic = errors.New("unknown topic")

// Topic describes a static menu page
type Topic struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Image   string `yaml:"image"`
	URL     string `yaml:"url"`
	Caption string `yaml:"caption"`
}

type document struct {
	Topics []Topic `yaml:"topics"`
}

// Registry is an immutable set of topics with images resolved against an assets directory
type Registry struct {
	assetsDir string
	topics    map[domain.Topic]Topic
}

// Default builds the registry from the embedded topic list
func Default(assetsDir string) (*Registry, error) {
	return Parse(defaultTopics, assetsDir)
}

// Load builds the registry from a YAML file, falling back to the embedded list if path is empty
func Load(path, assetsDir string) (*Registry, error) {
	if path == "" {
		return Default(assetsDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return Parse(data, assetsDir)
}

// Parse decodes and validates a YAML topic list
func Parse(data []byte, assetsDir string) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	r := &Registry{
		assetsDir: assetsDir,
		topics:    make(map[domain.Topic]Topic, len(doc.Topics)),
	}

	for _, t := range doc.Topics {
		topic := domain.ParseTopic(t.Key)
		if topic.Kind() == domain.KindUnknown || topic.Kind() == domain.KindNavigation {
			return nil, fmt.Errorf("topic %q: %w", t.Key, ErrUnknownTopic)
		}
		if _, dup := r.topics[topic]; dup {
			return nil, fmt.Errorf("topic %q is defined twice", t.Key)
		}
		if err := validate(topic, t); err != nil {
			return nil, err
		}
		r.topics[topic] = t
	}

	for _, topic := range domain.ContentTopics() {
		if _, ok := r.topics[topic]; !ok {
			return nil, fmt.Errorf("topic %q is missing", topic)
		}
	}

	return r, nil
}

func validate(topic domain.Topic, t Topic) error {
	if t.Title == "" {
		return fmt.Errorf("topic %q: title is required", t.Key)
	}

	switch topic.Kind() {
	case domain.KindLink:
		u, err := url.Parse(t.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("topic %q: invalid url %q", t.Key, t.URL)
		}
	case domain.KindInfo:
		if t.Caption == "" {
			return fmt.Errorf("topic %q: caption is required", t.Key)
		}
	}
	return nil
}

// Get returns the topic definition
func (r *Registry) Get(topic domain.Topic) (Topic, error) {
	t, ok := r.topics[topic]
	if !ok {
		return Topic{}, fmt.Errorf("topic %q: %w", topic, ErrUnknownTopic)
	}
	return t, nil
}

// Title returns the display name of the topic, or its key if not registered
func (r *Registry) Title(topic domain.Topic) string {
	if t, ok := r.topics[topic]; ok {
		return t.Title
	}
	return topic.String()
}

// ImagePath resolves the topic image against the assets directory
func (r *Registry) ImagePath(topic domain.Topic) string {
	t, ok := r.topics[topic]
	if !ok || t.Image == "" {
		return ""
	}
	return filepath.Join(r.assetsDir, t.Image)
}
