package save

import "errors"

var ErrSaveNotFound = errors.New("game save not found")
