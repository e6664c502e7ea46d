package mempool

import "errors"

var (
	// ErrForeignPointer is returned by Put when the pointer does not
	// belong to any chunk of the pool. The original silent-drop behavior
	// hid caller bugs, so misrouted frees fail loudly instead.
	ErrForeignPointer = errors.New("mempool: pointer does not belong to this pool")

	// ErrPoolClosed is returned by Get and Put after Close.
	ErrPoolClosed = errors.New("mempool: pool is closed")

	// ErrLeakedSlots is reported by Close when elements were never
	// returned. The arenas are released regardless.
	ErrLeakedSlots = errors.New("mempool: slots still allocated at close")

	// ErrZeroSizedElement rejects element types without storage; their
	// slots would all share one address and ownership tests could not
	// tell them apart.
	ErrZeroSizedElement = errors.New("mempool: element type must have nonzero size")
)
