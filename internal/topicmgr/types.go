// Package topicmgr keeps the catalogue of event topics modules publish on.
package topicmgr

// Topic is a typed event topic identifier.
type Topic interface {
	// Name returns the unique string identifier used on the bus.
	Name() string

	// Module returns the module that owns this topic.
	Module() string

	// Description returns human-readable documentation.
	Description() string

	// Example returns a sample payload.
	Example() string
}

// TypedTopic is the standard Topic implementation.
type TypedTopic struct {
	name        string
	module      string
	description string
	example     string
}

var _ Topic = (*TypedTopic)(nil)

// TopicConfig holds configuration for creating a new topic.
type TopicConfig struct {
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// DefineModule creates a topic owned by a module.
func DefineModule(config TopicConfig) Topic {
	return &TypedTopic{
		name:        config.Name,
		module:      config.Module,
		description: config.Description,
		example:     config.Example,
	}
}

func (t *TypedTopic) Name() string        { return t.name }
func (t *TypedTopic) Module() string      { return t.module }
func (t *TypedTopic) Description() string { return t.description }
func (t *TypedTopic) Example() string     { return t.example }

// String returns the topic name for easy debugging.
func (t *TypedTopic) String() string { return t.name }

// ErrorType classifies a TopicError.
type ErrorType string

const (
	ErrorTopicNotFound         ErrorType = "topic_not_found"
	ErrorDuplicateRegistration ErrorType = "duplicate_registration"
	ErrorValidationFailed      ErrorType = "validation_failed"
)

// TopicError represents structured errors in the topic catalogue.
type TopicError struct {
	Type    ErrorType `json:"type"`
	Topic   string    `json:"topic"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

// Error implements the error interface.
func (e *TopicError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TopicError) Unwrap() error {
	return e.Cause
}
