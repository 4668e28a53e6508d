// Package client talks to the third-party recipe provider.
//
// The Client interface covers the three provider calls the application
// needs: complex search, recipe information by id and random suggestions.
// HTTPClient implements it against a Spoonacular-compatible REST API,
// authenticating every request with an API key passed as the apiKey query
// parameter. MockClient returns deterministic synthetic recipes and is used
// when no key is configured.
//
// # Error Handling
//
// Every provider failure (transport, non-2xx status, undecodable body) is
// wrapped with common.ErrRemoteFetchFailed. Nothing is retried.
package client
