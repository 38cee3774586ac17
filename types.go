package dpledger

// Msg is implemented by all messages processed by an extension.
type Msg interface {
	// Validate returns an error if the message shape is invalid. This
	// is a stateless check that does not consult the store.
	Validate() error

	// Path returns the unique routing name of this message.
	Path() string
}

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. A nil start iterates from the first key, a nil end
	// iterates through the last one.
	Iterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a subset of KVStore that allows mutation.
type SetDeleter interface {
	Set(key, value []byte) error

	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator allows sequential access to a range of keys. Release must be
// called once iteration is finished.
//
//	for k, v, err := it.Next(); err == nil; k, v, err = it.Next() {
//		...
//	}
type Iterator interface {
	// Next moves the cursor and returns the key and value it stopped
	// at. When the iterator is exhausted, ErrIteratorDone is returned.
	Next() (key, value []byte, err error)

	// Release frees all resources held by the iterator. It is safe to
	// call it more than once.
	Release()
}

// CacheableKVStore is a KVStore that can be cache wrapped.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch pad of uncommitted writes layered over
// another store. Call Write to apply the collected changes to the
// underlying store, or Discard to drop them. A cache wrap realizes the
// all-or-nothing semantics of a single ledger operation.
type KVCacheWrap interface {
	CacheableKVStore

	// Write applies all cached writes to the underlying store.
	Write() error

	// Discard invalidates this cache wrap and releases all data.
	Discard()
}
