// Package memory provides an in-memory presenter that records narration and
// published choices instead of displaying them.
package memory
