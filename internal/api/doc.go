// Package api is the HTTP/JSON adapter over the storage gateway.
//
// Handlers are deliberately thin: decode a request, call exactly one gateway
// operation, encode the result. All storage semantics (canonicalization,
// atomicity, the error taxonomy) live in internal/store; this package only
// maps that taxonomy onto status codes:
//
//   - ErrUnknownWord            -> 422
//   - ErrNotFound               -> 404
//   - ErrDuplicateParticipant   -> 409
//   - malformed JSON            -> 400
//   - missing/wrong credentials -> 401
//   - anything else             -> 500
//
// Write endpoints are gated by the shared group password (HTTP Basic, see
// internal/auth). Suggestion submissions are attributed by reverse-DNS of the
// first X-Forwarded-For address.
package api
