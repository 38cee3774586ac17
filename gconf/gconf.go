/*
Package gconf provides a toolset for managing an extension configuration.

Every extension that defines a configuration object can use gconf to load
and store it as a singleton record in the key-value store.
*/
package gconf

import (
	"encoding/json"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
)

// Configuration is implemented by any extension configuration object.
type Configuration interface {
	Validate() error
}

// Save validates the object, then writes it to a special "configuration"
// singleton for that package name.
func Save(db dpledger.KVStore, pkg string, src Configuration) error {
	key := []byte("_c:" + pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := json.Marshal(src)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load loads the configuration singleton of given package into dst.
// ErrNotFound is returned when no configuration was ever saved.
func Load(db dpledger.ReadOnlyKVStore, pkg string, dst Configuration) error {
	key := []byte("_c:" + pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrState, "unmarshal: key %q", key)
	}
	return nil
}
