package dataset

import "errors"

var (
	// ErrMissingColumn indicates a recording without one of the expected header columns.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrUnknownSensor indicates a sensor code outside the sensor table.
	ErrUnknownSensor = errors.New("dataset: unknown sensor")

	// ErrUnknownAxis indicates an axis name other than x, y or z.
	ErrUnknownAxis = errors.New("dataset: unknown axis")
)
