package sigs

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/dp-one/dpledger"
	"github.com/dp-one/dpledger/errors"
	"github.com/dp-one/dpledger/orm"
)

// UsedDigest is the record kept for every consumed authorization digest.
// The set only ever grows; a digest once used is blocked forever.
type UsedDigest struct {
	By common.Address   `json:"by"`
	At dpledger.UnixTime `json:"at"`
}

func (u *UsedDigest) Validate() error {
	if u.At < 0 {
		return errors.Wrap(errors.ErrModel, "negative consumption time")
	}
	return nil
}

// ReplayGuard records which digests were already consumed and rejects
// re-submission.
type ReplayGuard struct {
	bucket orm.ModelBucket
}

// NewReplayGuard returns a replay guard persisting consumed digests in
// its own bucket.
func NewReplayGuard() *ReplayGuard {
	return &ReplayGuard{
		bucket: orm.NewModelBucket("usedsig"),
	}
}

// Used returns true if given digest was consumed before.
func (g *ReplayGuard) Used(db dpledger.ReadOnlyKVStore, digest []byte) (bool, error) {
	return g.bucket.Has(db, digest)
}

// MarkUsed permanently records the digest as consumed. Marking an
// already consumed digest fails with ErrReusedDigest, so that a single
// call provides at-most-once semantics.
func (g *ReplayGuard) MarkUsed(db dpledger.KVStore, digest []byte, by common.Address, at dpledger.UnixTime) error {
	switch used, err := g.Used(db, digest); {
	case err != nil:
		return err
	case used:
		return errors.Wrap(ErrReusedDigest, "digest")
	}
	return g.bucket.Put(db, digest, &UsedDigest{By: by, At: at})
}
