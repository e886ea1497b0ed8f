// Package ratelimit implements per-client admission control for the HTTP
// API.
//
// Two policies run on every request, in order:
//
//   - a hard cap ([Limiter]): a fixed window per client key that rejects
//     requests once the count exceeds the limit;
//   - a soft throttle ([Throttle]): a separate fixed window that delays each
//     request over a threshold by a growing amount.
//
// [Controller] combines both. Counters live behind the [Store] interface,
// so the in-process [MemoryStore] can be replaced with a shared store when
// several instances serve the same clients. [IPResolver] derives the client
// key from a request, honouring forwarding headers only from configured
// trusted proxies.
package ratelimit
