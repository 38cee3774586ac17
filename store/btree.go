package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/dp-one/dpledger/errors"
)

// MemStore returns an empty, in-memory cacheable store. There is no
// persistence behind it. Use CacheWrap to get a scratch pad that can be
// written back or discarded atomically.
func MemStore() CacheableKVStore {
	return newBTreeCacheWrap(emptyKVStore{}, nil)
}

// btreeCacheWrap places a btree overlay over a read-only backing store.
// Reads consult the overlay first and fall through to the backing store.
// Writes are collected both in the overlay and in an ordered operation
// log that Write replays onto the parent.
type btreeCacheWrap struct {
	bt   *btree.BTreeG[item]
	back ReadOnlyKVStore
	// parent receives the operation log on Write. It is nil for the
	// bottom layer (MemStore), which keeps all data in the overlay.
	parent SetDeleter
	ops    []operation
}

var _ KVCacheWrap = (*btreeCacheWrap)(nil)

type item struct {
	key     []byte
	value   []byte
	deleted bool
}

type operation struct {
	delete bool
	key    []byte
	value  []byte
}

func newBTreeCacheWrap(back ReadOnlyKVStore, parent SetDeleter) *btreeCacheWrap {
	return &btreeCacheWrap{
		bt: btree.NewG(2, func(a, b item) bool {
			return bytes.Compare(a.key, b.key) < 0
		}),
		back:   back,
		parent: parent,
	}
}

// CacheWrap layers another overlay on top of this store.
func (b *btreeCacheWrap) CacheWrap() KVCacheWrap {
	return newBTreeCacheWrap(b, b)
}

// Write replays all collected operations onto the parent store and
// invalidates this wrap. The bottom layer keeps its data and treats
// Write as a no-op so that MemStore state survives.
func (b *btreeCacheWrap) Write() error {
	if b.parent == nil {
		b.ops = nil
		return nil
	}
	for _, op := range b.ops {
		var err error
		if op.delete {
			err = b.parent.Delete(op.key)
		} else {
			err = b.parent.Set(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	b.Discard()
	return nil
}

// Discard drops all uncommitted data held by this wrap.
func (b *btreeCacheWrap) Discard() {
	if b.parent == nil {
		// The bottom layer owns its data.
		return
	}
	b.bt.Clear(false)
	b.ops = nil
}

// Set writes to the overlay and records the operation.
func (b *btreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(item{key: ckey(key), value: cval(value)})
	if b.parent != nil {
		b.ops = append(b.ops, operation{key: ckey(key), value: cval(value)})
	}
	return nil
}

// Delete removes from the overlay and records the operation.
func (b *btreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(item{key: ckey(key), deleted: true})
	if b.parent != nil {
		b.ops = append(b.ops, operation{delete: true, key: ckey(key)})
	}
	return nil
}

// Get reads from the overlay if present, else the backing store.
func (b *btreeCacheWrap) Get(key []byte) ([]byte, error) {
	if it, ok := b.bt.Get(item{key: key}); ok {
		if it.deleted {
			return nil, nil
		}
		return it.value, nil
	}
	return b.back.Get(key)
}

// Has reads from the overlay if present, else the backing store.
func (b *btreeCacheWrap) Has(key []byte) (bool, error) {
	if it, ok := b.bt.Get(item{key: key}); ok {
		return !it.deleted, nil
	}
	return b.back.Has(key)
}

// Iterator iterates over the key range [start, end) in ascending order,
// combining the overlay with the backing store. The result set is
// materialized upfront: per-call data sets of the ledger are small and a
// snapshot keeps the semantics independent of writes performed during
// iteration.
func (b *btreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	backIter, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	var models []Model
	for {
		k, v, err := backIter.Next()
		if err != nil {
			backIter.Release()
			if errors.ErrIteratorDone.Is(err) {
				break
			}
			return nil, err
		}
		models = append(models, Model{Key: k, Value: v})
	}

	merged := make([]Model, 0, len(models))
	i := 0
	b.treeRange(start, end, func(it item) bool {
		for ; i < len(models) && bytes.Compare(models[i].Key, it.key) < 0; i++ {
			merged = append(merged, models[i])
		}
		// The overlay shadows the backing store on equal keys.
		if i < len(models) && bytes.Equal(models[i].Key, it.key) {
			i++
		}
		if !it.deleted {
			merged = append(merged, Model{Key: it.key, Value: it.value})
		}
		return true
	})
	merged = append(merged, models[i:]...)

	return NewSliceIterator(merged), nil
}

func (b *btreeCacheWrap) treeRange(start, end []byte, fn func(item) bool) {
	visit := func(it item) bool {
		if end != nil && bytes.Compare(it.key, end) >= 0 {
			return false
		}
		return fn(it)
	}
	if start == nil {
		b.bt.Ascend(visit)
	} else {
		b.bt.AscendGreaterOrEqual(item{key: start}, visit)
	}
}

func ckey(k []byte) []byte {
	return append([]byte{}, k...)
}

func cval(v []byte) []byte {
	if v == nil {
		return []byte{}
	}
	return append([]byte{}, v...)
}

// emptyKVStore never holds any data. It is the base layer of MemStore.
type emptyKVStore struct{}

var _ ReadOnlyKVStore = emptyKVStore{}

func (e emptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }

func (e emptyKVStore) Has([]byte) (bool, error) { return false, nil }

func (e emptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}
