// Package permission provides the value types of the authorization model:
// validated identifiers, the resource:action permission token, and the
// wildcard-aware matcher.
//
// All identifiers are normalized at construction: trimmed, case-folded to
// lowercase, and restricted to [a-z0-9_-] with a maximum length of 128.
// Two identifiers are equal iff their normalized text is equal, so values
// built through the constructors compare with ==.
//
// Permissions are two non-empty segments separated by a single colon
// (e.g., "invoice:read"). The "*" token is legal as a whole segment only;
// whether it matches anything is decided at match time by Matcher, never
// at construction.
//
// Basic usage:
//
//	perm, err := permission.New(" Invoice:Read ")
//	// perm == "invoice:read"
//
//	m := permission.Matcher{Wildcard: true, Normalize: true}
//	m.Matches("invoice:*", "invoice:read") // true
//	m.Matches("*:read", "report:read")     // true
//
// With Matcher.Wildcard false, a granted permission containing "*" in any
// segment never matches, so wildcard grants stored ahead of time cannot
// widen access until the engine opts in.
package permission
