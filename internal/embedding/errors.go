package embedding

import "errors"

var (
	// ErrInvalidDimension indicates a window length that is not in [1, len(series)).
	ErrInvalidDimension = errors.New("embedding: window must satisfy 1 <= L < len(series)")

	// ErrInvalidComponentCount indicates more principal components than features or observations.
	ErrInvalidComponentCount = errors.New("embedding: invalid number of principal components")

	// ErrDecomposition indicates the singular value decomposition did not converge.
	ErrDecomposition = errors.New("embedding: principal component decomposition failed")
)
