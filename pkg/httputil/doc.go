// Package httputil provides retry helpers for calls to remote model
// providers.
//
// Transient failures (network errors, 5xx responses, 429 rate limits) are
// wrapped with [Retryable]; a [Policy] re-runs the operation with capped
// exponential backoff and returns any other error immediately:
//
//	err := httputil.DefaultPolicy().Do(ctx, func() error {
//	    resp, err := client.CreateChatCompletion(ctx, req)
//	    if isTransient(err) {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
package httputil
