package service

import "sync"

// ErrorState is the single user-visible reported-error slot. Send and upload
// both write to it; the UI polls it alongside the loading flag. Errors never
// propagate uncaught past the services — they end up here as one string.
type ErrorState struct {
	mu      sync.Mutex
	message string
}

func NewErrorState() *ErrorState {
	return &ErrorState{}
}

func (e *ErrorState) Set(message string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = message
}

func (e *ErrorState) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.message = ""
}

func (e *ErrorState) Get() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.message
}
