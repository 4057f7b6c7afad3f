// Package flickr is a typed client for the photo-sharing REST API.
//
// A [*Client] exposes one object per API resource. Every operation Op comes
// in two flavours:
//
//   - OpAsync starts the call and returns an [*asyncx.Future]. When the call
//     completes, the same [asyncx.Result] is also published on the
//     resource's OpCompleted event, which is shared by all the calls of Op
//     and carries the call token for correlation.
//
//   - Op blocks until the call completes. Passing a context without
//     deadline waits indefinitely.
//
// Failures reported by the service are [*APIError] values; use
// [ErrorCode] to inspect the numeric code.
package flickr
