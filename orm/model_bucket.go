package orm

import (
	"encoding/json"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

// Model is implemented by any entity that can be stored using a
// ModelBucket.
type Model interface {
	Validate() error
}

// ModelBucket stores entities of one kind under a common key prefix.
// Entities are serialized with JSON. Every model is validated before it
// is written.
type ModelBucket struct {
	prefix []byte
}

// NewModelBucket returns a bucket that isolates its content under the
// given name. The name must be unique among all buckets used on the same
// store.
func NewModelBucket(name string) ModelBucket {
	return ModelBucket{
		prefix: []byte(name + ":"),
	}
}

// Key returns the absolute store key used for given entity key.
func (b ModelBucket) Key(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// One queries the bucket for a single entity. Lookup is done by the
// primary key. The result is loaded into the given destination model.
// ErrNotFound is returned if the entity does not exist.
func (b ModelBucket) One(db dpledger.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.Key(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot deserialize %T", dest)
	}
	return nil
}

// Has returns true if an entity with given key exists in this bucket.
func (b ModelBucket) Has(db dpledger.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.Key(key))
}

// Put saves given model in the database under given key.
func (b ModelBucket) Put(db dpledger.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "cannot serialize %T", m)
	}
	return db.Set(b.Key(key), raw)
}

// Delete removes an entity with given primary key from the bucket. It
// returns ErrNotFound if the entity does not exist.
func (b ModelBucket) Delete(db dpledger.KVStore, key []byte) error {
	ok, err := db.Has(b.Key(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrNotFound, "no entity under this key")
	}
	return db.Delete(b.Key(key))
}

// Iterate calls fn for every entity in the bucket whose key starts with
// the given key prefix, in ascending key order. The key passed to fn is
// relative to the bucket (the bucket name is stripped). Returning an
// error from fn stops the iteration and the error is passed through.
func (b ModelBucket) Iterate(db dpledger.ReadOnlyKVStore, keyPrefix []byte, fn func(key, value []byte) error) error {
	start := b.Key(keyPrefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return err
	}
	defer it.Release()
	for {
		k, v, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				return nil
			}
			return err
		}
		if err := fn(k[len(b.prefix):], v); err != nil {
			return err
		}
	}
}

// prefixEnd returns the smallest key that is lexicographically greater
// than any key starting with the given prefix, or nil when no such key
// exists.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
