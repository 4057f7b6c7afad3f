// Package asyncx contains the asynchronous call primitives.
//
// Each logical call is identified by a [Token] minted when the call is
// issued. Its outcome is a [Result] carrying the same token. Results are
// delivered through two channels at once:
//
// - the per-call [*Future], which completes exactly once;
//
// - the [*Event] shared by every call of the same operation, whose
// subscribers must filter by token.
//
// [CallSync] turns the event based flavour into a blocking call.
package asyncx
