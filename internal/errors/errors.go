package errors

import "errors"

// This package defines a centralized set of sentinel errors for the
// application. Services return these without knowing anything about HTTP;
// the API layer checks them with `errors.Is()` and maps each one to a status
// code and a single user-visible error string.

var (
	// ErrNotFound signifies that a requested resource could not be located,
	// e.g. a conversation id that is not present in the store.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed a local check
	// (empty prompt, empty credential, model not offered by the provider).
	// Detected before any network call is made.
	ErrValidation = errors.New("validation failed")

	// ErrMissingCredential signifies that the selected provider requires an
	// API key and none has been saved. Detected locally.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnsupportedProvider signifies that the provider is known but gated
	// off for live responses. This is a deliberate feature gate, reported
	// locally without contacting the upstream.
	ErrUnsupportedProvider = errors.New("provider not enabled for live responses")

	// ErrBusy signifies that a send arrived while another one is already in
	// flight. The action is dropped without any state mutation.
	ErrBusy = errors.New("request already in progress")

	// ErrUpstream signifies that the outbound call failed or returned a
	// non-success status.
	ErrUpstream = errors.New("upstream request failed")

	// ErrTimeout signifies that the outbound call exceeded its deadline.
	ErrTimeout = errors.New("upstream request timed out")

	// ErrInternal signifies an unexpected server-side error. Used to avoid
	// leaking implementation details to the client.
	ErrInternal = errors.New("internal server error")
)
