package conn

import "errors"

// ErrUnknownConnection is returned by Close and Drop when name does not
// name an open connection.
var ErrUnknownConnection = errors.New("unknown connection")
