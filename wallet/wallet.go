// Package wallet defines the credential wallet contract shared by all
// storage backends.
//
// A wallet is a flat namespace of named secrets. Each secret is either
// text or a raw byte buffer; the two kinds round-trip exactly through any
// backend. Backends are interchangeable: the in-memory and bbolt variants
// implement the same semantics as the MongoDB core.
package wallet

import "context"

// Wallet is the capability set implemented by every credential storage
// backend. All operations are safe for concurrent use as long as the
// underlying store's handle is; the wallet layer adds no locking, caching
// or retry logic of its own. Context deadlines and cancellation pass
// through to the underlying driver unmodified.
type Wallet interface {
	// Put stores value under name, replacing any previous value wholesale.
	// Concurrent writers to the same name resolve last-write-wins.
	Put(ctx context.Context, name string, value Value) error

	// Get returns the value stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) (Value, error)

	// Remove deletes the value stored under name. Removing an absent
	// name is not an error.
	Remove(ctx context.Context, name string) error

	// ListNames returns the names present in the wallet, in store order.
	// Callers must not rely on any particular ordering.
	ListNames(ctx context.Context) ([]string, error)

	// Contains reports whether a value is stored under name.
	Contains(ctx context.Context, name string) (bool, error)

	// GetAll returns every name/value pair in the wallet. The snapshot is
	// not atomic: a name removed while GetAll runs is simply absent from
	// the result.
	GetAll(ctx context.Context) (map[string]Value, error)
}
