package checkpoint

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"pkg.jsn.cam/brc/pkg/brc"
)

var (
	metaBucket = []byte("meta")
	versionKey = []byte("version")
)

// BoltStore implements Store on a bbolt database file.
type BoltStore struct {
	db    *bolt.DB
	codec *codec
}

// OpenBolt opens or creates the store at path. A store written by an
// incompatible major version is rejected with ErrIncompatibleStore.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create checkpoint directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	if err := db.Update(checkVersion); err != nil {
		db.Close()
		return nil, err
	}

	c, err := newCodec()
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[CHECKPOINT] Opened store %s (format %s)", path, FormatVersion)

	return &BoltStore{db: db, codec: c}, nil
}

// checkVersion stamps a new store or validates an existing one.
func checkVersion(tx *bolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists(metaBucket)
	if err != nil {
		return err
	}

	stored := meta.Get(versionKey)
	if stored == nil {
		return meta.Put(versionKey, []byte(FormatVersion))
	}

	ok, err := IsCompatibleVersion(string(stored), FormatVersion)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleStore, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrIncompatibleStore, CompatibilityError(string(stored), FormatVersion))
	}

	return nil
}

// Load returns the partial saved for r under fp.
func (b *BoltStore) Load(fp Fingerprint, r brc.ByteRange) (brc.Result, bool, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketName(fp))
		if bkt == nil {
			return nil
		}
		if v := bkt.Get(rangeKey(r)); v != nil {
			// Copy the value since it's only valid during the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	res, err := b.codec.decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("load %s range %s: %w", fp, r, err)
	}

	return res, true, nil
}

// Save stores res as the partial for r under fp, replacing any previous one.
func (b *BoltStore) Save(fp Fingerprint, r brc.ByteRange, res brc.Result) error {
	data, err := b.codec.encode(res)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketName(fp))
		if err != nil {
			return err
		}
		return bkt.Put(rangeKey(r), data)
	})
}

// Forget deletes every partial saved under fp.
func (b *BoltStore) Forget(fp Fingerprint) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(bucketName(fp))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil // Idempotent
		}
		return err
	})
}

// Close closes the database.
func (b *BoltStore) Close() error {
	b.codec.close()
	return b.db.Close()
}
