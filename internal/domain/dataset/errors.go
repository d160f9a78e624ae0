package dataset

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrBadRecord      = errors.New("bad dataset record")
)
