package store

import "github.com/dp-one/dpledger"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = dpledger.ReadOnlyKVStore
type KVStore = dpledger.KVStore
type SetDeleter = dpledger.SetDeleter
type Iterator = dpledger.Iterator
type CacheableKVStore = dpledger.CacheableKVStore
type KVCacheWrap = dpledger.KVCacheWrap
