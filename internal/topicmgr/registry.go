package topicmgr

import (
	"sort"
	"sync"
)

// Registry is the process-wide catalogue of declared topics.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]Topic
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{topics: make(map[string]Topic)}
}

// Register validates topic and adds it to the catalogue.
func (r *Registry) Register(topic Topic) error {
	if err := ValidateDefinition(topic); err != nil {
		name := ""
		if topic != nil {
			name = topic.Name()
		}
		return &TopicError{Type: ErrorValidationFailed, Topic: name, Message: "topic validation failed", Cause: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.topics[topic.Name()]; exists {
		return &TopicError{Type: ErrorDuplicateRegistration, Topic: topic.Name(), Message: "topic already registered"}
	}
	r.topics[topic.Name()] = topic
	return nil
}

// Get retrieves a topic by name.
func (r *Registry) Get(name string) (Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topic, ok := r.topics[name]
	if !ok {
		return nil, &TopicError{Type: ErrorTopicNotFound, Topic: name, Message: "topic not found"}
	}
	return topic, nil
}

// List returns every topic sorted by name.
func (r *Registry) List() []Topic {
	return r.filter(func(Topic) bool { return true })
}

// ListByModule returns the topics owned by module, sorted by name.
func (r *Registry) ListByModule(module string) []Topic {
	return r.filter(func(t Topic) bool { return t.Module() == module })
}

func (r *Registry) filter(keep func(Topic) bool) []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Topic, 0, len(r.topics))
	for _, t := range r.topics {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
