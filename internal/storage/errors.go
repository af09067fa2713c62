package storage

import "errors"

var ErrInvalidTimestamp = errors.New("invalid timestamp in stored record")
