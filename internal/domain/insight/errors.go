package insight

import "errors"

// ErrNotFound signals that a collaborator could not resolve the requested
// entity, e.g. a deep scan or comparison for an unknown model.
var ErrNotFound = errors.New("not found")
