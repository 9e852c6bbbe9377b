package topicmgr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// namePattern is hierarchical and dot separated, e.g. session.end_failed.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)+$`)

// ValidateDefinition checks that a topic is complete before it is registered.
func ValidateDefinition(topic Topic) error {
	if topic == nil {
		return errors.New("topic cannot be nil")
	}
	if !namePattern.MatchString(topic.Name()) {
		return fmt.Errorf("invalid topic name %q: want lower-case dot separated segments", topic.Name())
	}
	if strings.TrimSpace(topic.Module()) == "" {
		return errors.New("topic module cannot be empty")
	}
	if strings.TrimSpace(topic.Description()) == "" {
		return errors.New("topic description cannot be empty")
	}
	return nil
}
