package permission

import (
	"errors"
	"fmt"
	"strings"
)

// Wildcard is the token standing for any value in one segment of a permission.
const Wildcard = "*"

// Separator splits a permission into its resource and action segments.
const Separator = ":"

// Permission is a "resource:action" token, the unit of match.
// The canonical form is lowercase with exactly one separator.
type Permission string

// New parses and validates a permission, trimming whitespace and
// case-folding to the canonical lowercase form.
func New(value string) (Permission, error) {
	return parse(value, true)
}

// NewRaw parses and validates a permission without case-folding.
// Callers that disable normalization on the engine must use this
// consistently for both stored and queried permissions; mixing
// normalized and raw inputs yields a false Deny.
func NewRaw(value string) (Permission, error) {
	return parse(value, false)
}

func parse(value string, normalize bool) (Permission, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.Join(ErrInvalidPermission, errors.New("permission must not be empty"))
	}
	if normalize {
		trimmed = strings.ToLower(trimmed)
	}
	if strings.Count(trimmed, Separator) != 1 {
		return "", errors.Join(ErrInvalidPermission,
			errors.New("permission must be in resource:action format"))
	}
	resource, action, _ := strings.Cut(trimmed, Separator)
	if resource == "" || action == "" {
		return "", errors.Join(ErrInvalidPermission,
			errors.New("permission must not have empty segments"))
	}
	if !isValidSegment(resource) {
		return "", errors.Join(ErrInvalidPermission,
			fmt.Errorf("resource segment %q contains invalid characters", resource))
	}
	if !isValidSegment(action) {
		return "", errors.Join(ErrInvalidPermission,
			fmt.Errorf("action segment %q contains invalid characters", action))
	}
	return Permission(trimmed), nil
}

// isValidSegment accepts a bare wildcard or a non-empty run of
// [a-z0-9_-]. A wildcard embedded in a longer segment is invalid.
func isValidSegment(segment string) bool {
	if segment == Wildcard {
		return true
	}
	if segment == "" {
		return false
	}
	for _, ch := range segment {
		if !isNameChar(ch) {
			return false
		}
	}
	return true
}

func (p Permission) String() string { return string(p) }

// Resource returns the resource segment, or "" for a malformed value.
func (p Permission) Resource() string {
	resource, _, ok := strings.Cut(string(p), Separator)
	if !ok {
		return ""
	}
	return resource
}

// Action returns the action segment, or "" for a malformed value.
func (p Permission) Action() string {
	_, action, ok := strings.Cut(string(p), Separator)
	if !ok {
		return ""
	}
	return action
}

// HasWildcard reports whether either segment is the wildcard token.
func (p Permission) HasWildcard() bool {
	return p.Resource() == Wildcard || p.Action() == Wildcard
}
