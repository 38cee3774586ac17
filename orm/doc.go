/*
Package orm provides an easy to use interface for persisting models in a
key-value store.

A ModelBucket isolates a keyspace with a name prefix and takes care of
serialization and validation of stored entities. A Sequence provides
unique, monotonically growing identifiers.
*/
package orm
