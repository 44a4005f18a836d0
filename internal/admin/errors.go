package admin

import "errors"

var ErrNotFound = errors.New("admin not found")
