// Package sanitizer cleans user input before validation.
//
// String helpers (Trim, CollapseSpace, StripControl, ...) are plain functions.
// HTML helpers are backed by bluemonday policies:
//
//   - StripHTML removes every tag.
//   - SanitizeHTML keeps a small set of formatting tags and forces rel=nofollow.
//   - SanitizeMarkdownHTML cleans rendered markdown with a user-generated-content policy.
//
// SanitizeStruct applies transforms declared in `sanitize` struct tags, which
// is how request structs are cleaned before they reach the validator:
//
//	type registerRequest struct {
//		Name string `form:"user_name" sanitize:"trim"`
//	}
package sanitizer
