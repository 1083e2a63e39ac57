package platform

import "errors"

// ErrIsADirectory is the platform error surfaced when Open is asked to
// open a path that names an existing directory. It is distinct from the
// dberr domain taxonomy: structural/system errors pass through verbatim
// rather than being folded into the closed error set.
var ErrIsADirectory = errors.New("is a directory")
