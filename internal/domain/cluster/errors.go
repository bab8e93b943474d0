package cluster

import "errors"

var (
	// ErrIndexOutOfRange signals a member offset outside [0, Size).
	ErrIndexOutOfRange = errors.New("member index out of range")
	// ErrNoSeed signals a cluster point constructed without a seed input point.
	ErrNoSeed = errors.New("cluster point requires a seed input point")
)
