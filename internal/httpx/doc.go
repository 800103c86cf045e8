// Package httpx provides the shared low-level HTTP helpers used by every
// provider adapter. It covers synchronous JSON round-trips ([PostJSON],
// [GetJSON]) with bad-JSON repair, binary asset downloads with extension
// inference ([Download]), and string truncation for error previews.
package httpx
