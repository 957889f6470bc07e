package canvas

// DecodeOptions tunes how strictly documents are decoded. The zero value is
// the default: unknown keys are rejected, zero-sized nodes are accepted and
// edges may reference nodes the document does not contain.
type DecodeOptions struct {
	// AllowUnknownFields ignores unknown keys at every level instead of
	// failing with ErrUnknownField.
	AllowUnknownFields bool

	// RejectZeroSize fails with ErrZeroSize for nodes whose width or height
	// is zero.
	RejectZeroSize bool

	// ValidateReferences runs [Canvas.Validate] after decoding, so a document
	// with dangling edge endpoints fails with ErrDanglingEndpoint.
	ValidateReferences bool
}
