package sentinel

import "errors"

// ErrNotFound means no record exists under the key. Stores return it
// (optionally wrapped) so the resolver can treat absence uniformly without
// knowing which backend produced it.
var ErrNotFound = errors.New("not found")
