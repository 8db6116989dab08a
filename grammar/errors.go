package grammar

import "errors"

// Sentinel errors for grammar loading and building.
var (
	// ErrUnknownType indicates a node names a parser type that is not registered.
	ErrUnknownType = errors.New("unknown parser type")

	// ErrUnknownFunc indicates a custom node names an unregistered function.
	ErrUnknownFunc = errors.New("unknown function")

	// ErrUnknownRecord indicates a tuple node names an unregistered record.
	ErrUnknownRecord = errors.New("unknown record")

	// ErrInvalid indicates a node's options are missing or contradictory.
	ErrInvalid = errors.New("invalid grammar node")

	// ErrFormat indicates the grammar file format could not be determined
	// or decoded.
	ErrFormat = errors.New("unsupported grammar format")
)
