// Package dispatch routes one prompt to one or all registered providers and
// collects one settled result per provider.
//
// The dispatcher guarantees partial-failure containment: a provider with a
// missing credential settles as a failure without its adapter being called,
// a provider whose remote call fails settles with the provider's message
// preserved, and neither outcome disturbs the other targeted providers. Only
// caller input errors — an unknown provider key, a model without a provider,
// an empty prompt — abort a dispatch outright.
//
// Fan-out runs adapters concurrently so total latency is bounded by the
// slowest provider, while the result sequence always follows registry order.
// Per-call policy (timeouts, retries, request logging) is layered onto
// individual adapters with [Chain] and the middleware subpackage; the
// dispatcher itself never retries.
package dispatch
