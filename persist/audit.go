// Package persist implements the append-only audit log of committed and
// poisoned transactions (spec §4.5's persistence note: "a separate concern
// from the authoritative in-memory storage map"), keyed by TransactionID
// and storing each entry's rendered text (render.ShowTransaction) for
// replay/audit tooling.
package persist

import (
	"errors"
	"time"

	bolt "github.com/rivine/bbolt"

	"github.com/therewillbecode/Fae-1/types"
)

// Metadata identifies the audit log's on-disk format, checked on every
// open so a log from an incompatible engine version is rejected rather
// than silently misread.
type Metadata struct {
	Header  string
	Version string
}

var (
	// ErrBadHeader is returned when an audit log's header does not match
	// the expected Metadata.
	ErrBadHeader = errors.New("persist: mismatched header in audit log")
	// ErrBadVersion is returned when an audit log's version does not match
	// the expected Metadata.
	ErrBadVersion = errors.New("persist: mismatched version in audit log")
)

var metadataBucket = []byte("Metadata")
var entriesBucket = []byte("Entries")

// AuditLog is a bolt-backed append-only record of committed and poisoned
// transactions, grounded on the teacher's BoltDatabase wrapper
// (Metadata-checked OpenDatabase).
type AuditLog struct {
	Metadata
	db *bolt.DB
}

// OpenAuditLog opens (creating if necessary) the bolt file at filename and
// validates its Metadata header, the same shape as the teacher's
// OpenDatabase.
func OpenAuditLog(md Metadata, filename string) (*AuditLog, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}

	log := &AuditLog{Metadata: md, db: db}
	if err := log.checkMetadata(md); err != nil {
		db.Close()
		return nil, err
	}
	return log, nil
}

func (l *AuditLog) checkMetadata(md Metadata) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(metadataBucket)
		if bucket == nil {
			return l.writeMetadata(tx)
		}
		if header := bucket.Get([]byte("Header")); string(header) != md.Header {
			return ErrBadHeader
		}
		if version := bucket.Get([]byte("Version")); string(version) != md.Version {
			return ErrBadVersion
		}
		return nil
	})
}

func (l *AuditLog) writeMetadata(tx *bolt.Tx) error {
	bucket, err := tx.CreateBucketIfNotExists(metadataBucket)
	if err != nil {
		return err
	}
	if err := bucket.Put([]byte("Header"), []byte(l.Header)); err != nil {
		return err
	}
	return bucket.Put([]byte("Version"), []byte(l.Version))
}

// Record appends rendered (the output of render.ShowTransaction) under
// txID. Re-recording the same txID overwrites its prior text, matching an
// audit log's role as "last rendering wins", not a full version history.
func (l *AuditLog) Record(txID types.TransactionID, rendered string) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(entriesBucket)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(txID.String()), []byte(rendered))
	})
}

// Lookup returns the last rendered text recorded for txID, or false if
// nothing has been recorded under it.
func (l *AuditLog) Lookup(txID types.TransactionID) (string, bool, error) {
	var rendered []byte
	err := l.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(entriesBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(txID.String())); v != nil {
			rendered = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return string(rendered), rendered != nil, nil
}

// Close closes the underlying bolt database.
func (l *AuditLog) Close() error {
	return l.db.Close()
}
