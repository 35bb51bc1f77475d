package container

import "errors"

var errNoPool = errors.New("database pool not initialized")
