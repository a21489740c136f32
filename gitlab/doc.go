// Package gitlab provides a small, synchronous REST client for
// GitLab-compatible source-control APIs, built around four pieces:
// a request executor, a bounded constant-interval retry policy, an
// error translator for server error bodies, and a lazy page iterator
// that follows Link rel="next" headers.
//
// Retries
//   - Controlled via Builder.WithRetry(maxAttempts, interval).
//   - Retries guard against transport failures (connection refused,
//     DNS, timeouts with no response). Server error responses are
//     never retried; they are translated into *APIError instead.
//   - A custom predicate can narrow what counts as retryable.
//
// Errors
//   - Non-2xx responses become *APIError carrying the status code, an
//     extracted message, the raw parsed error body, and the original
//     method and URL.
//   - Transport failures that exhaust the retry policy propagate
//     unchanged.
//   - Successful responses whose bodies do not decode into the
//     expected shape become *DecodeError.
//
// Pagination
//   - List endpoints return a *Pages[T] iterator. Each listing call
//     starts an independent iteration from the entry URL; a single
//     iterator is not safe for concurrent use.
//   - One page is held in memory at a time and a page with zero items
//     ends the sequence.
//
// Notes
//   - Request bodies are re-sent by rebuilding the http.Request on
//     each retry attempt.
//   - Responses are requested gzip-encoded and decompressed
//     transparently.
package gitlab
