package motif

import "errors"

// Configuration errors, returned by constructors.
var (
	ErrEmptyMotif      = errors.New("motif has no positions")
	ErrEmptyPosition   = errors.New("inconsistent data: some positions in motif have no possible values")
	ErrSizeMismatch    = errors.New("sizes do not match")
	ErrUnsupportedSize = errors.New("bitap patterns support motifs with length less than 64")
)

// Usage errors, returned when a search or score is requested.
var (
	ErrOutOfRange       = errors.New("search range out of bounds")
	ErrAlphabetMismatch = errors.New("target alphabet differs from the motif alphabet")
	ErrNegativeErrors   = errors.New("maximal number of errors must not be negative")
	ErrNoMatch          = errors.New("bit-score available only when a match is found")
	ErrNoScore          = errors.New("underlying matcher has no scoring information")
	ErrNotImplemented   = errors.New("indel search with exact positions is not implemented")
)
