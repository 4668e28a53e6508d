// Package metadata stores small opaque key/value blobs: the session
// credential slot, the meal plan and the generated token secret.
package metadata
