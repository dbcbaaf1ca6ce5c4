package runtime

import "errors"

// Sentinel errors for the runtime layer.
var (
	// ErrOutOfResources is returned by Env.Retain when the VM cannot mint
	// another durable handle. It is fatal to whatever the caller was
	// constructing; a partially built filter must not be installed.
	ErrOutOfResources = errors.New("runtime: out of handle resources")

	// ErrNoFrame is returned by Env.Receiver when the requested frame or
	// slot is unavailable. Callers treat it as "receiver unknown", never
	// as a hard failure.
	ErrNoFrame = errors.New("runtime: frame or slot unavailable")
)
