package gconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/store"
)

type config struct {
	Limit int `json:"limit"`
}

func (c *config) Validate() error {
	if c.Limit < 0 {
		return errors.Wrap(errors.ErrModel, "negative limit")
	}
	return nil
}

func TestSaveAndLoad(t *testing.T) {
	db := store.MemStore()

	require.NoError(t, Save(db, "demo", &config{Limit: 42}))

	var c config
	require.NoError(t, Load(db, "demo", &c))
	assert.Equal(t, 42, c.Limit)
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()

	var c config
	err := Load(db, "demo", &c)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestSaveValidates(t *testing.T) {
	db := store.MemStore()

	err := Save(db, "demo", &config{Limit: -1})
	assert.True(t, errors.ErrModel.Is(err))

	var c config
	err = Load(db, "demo", &c)
	assert.True(t, errors.ErrNotFound.Is(err))
}
