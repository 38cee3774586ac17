package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/store"
)

type counter struct {
	Count int `json:"count"`
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func TestModelBucketPutAndOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnt")

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 5}))

	var c counter
	require.NoError(t, b.One(db, []byte("a"), &c))
	assert.Equal(t, 5, c.Count)

	err := b.One(db, []byte("unknown"), &c)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnt")

	err := b.Put(db, []byte("a"), &counter{Count: -1})
	assert.True(t, errors.ErrModel.Is(err))

	ok, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnt")

	err := b.Delete(db, []byte("a"))
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 1}))
	require.NoError(t, b.Delete(db, []byte("a")))
	ok, err := b.Has(db, []byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModelBucketIsolation(t *testing.T) {
	db := store.MemStore()
	first := NewModelBucket("first")
	second := NewModelBucket("second")

	require.NoError(t, first.Put(db, []byte("a"), &counter{Count: 1}))

	var c counter
	err := second.One(db, []byte("a"), &c)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnt")

	require.NoError(t, b.Put(db, []byte("a1"), &counter{Count: 1}))
	require.NoError(t, b.Put(db, []byte("a2"), &counter{Count: 2}))
	require.NoError(t, b.Put(db, []byte("b1"), &counter{Count: 3}))

	var keys []string
	err := b.Iterate(db, []byte("a"), func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, keys)

	keys = nil
	err = b.Iterate(db, nil, func(key, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1"}, keys)
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnt", "id")

	n, err := s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	latest, raw, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest)
	assert.Equal(t, EncodeSequence(2), raw)

	// Sequence values are comparable as raw bytes too.
	prev, _ := s.NextVal(db)
	next, _ := s.NextVal(db)
	assert.True(t, string(prev) < string(next))
}
