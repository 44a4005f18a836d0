package reception

import "errors"

var ErrNotFound = errors.New("receptionist not found")
