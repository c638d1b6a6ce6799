package yamdb

import "errors"

// ErrNoDatabase indicates that no database option was given to New.
var ErrNoDatabase = errors.New("yamdb: no database configured")

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("yamdb: client is closed")
