// Package bbolt provides a BBolt-backed wallet for file-based deployments.
//
// Each namespace prefix maps to one bucket; within a bucket, keys are
// credential names and values are JSON records carrying the same
// valueBase64/valueString shape as the MongoDB documents.
package bbolt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jmcleod/lockbox/wallet"
)

// Store implements wallet.Wallet backed by a BBolt database.
type Store struct {
	db     *bbolt.DB
	prefix string
}

var _ wallet.Wallet = (*Store)(nil)

// credentialRecord mirrors the MongoDB document payload; exactly one
// field is set per record.
type credentialRecord struct {
	ValueBase64 *string `json:"valueBase64,omitempty"`
	ValueString *string `json:"valueString,omitempty"`
}

// New returns a Store over the given BBolt database, scoped by namePrefix.
// Multiple stores with different prefixes can share one database.
func New(db *bbolt.DB, namePrefix string) *Store {
	return &Store{db: db, prefix: namePrefix}
}

// NewFromFile opens a BBolt database at path and returns a new Store.
func NewFromFile(path, namePrefix string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return New(db, namePrefix), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeRecord(value wallet.Value) ([]byte, error) {
	var rec credentialRecord
	switch value.Kind() {
	case wallet.KindBinary:
		enc := base64.StdEncoding.EncodeToString(value.Bytes())
		rec.ValueBase64 = &enc
	case wallet.KindText:
		text := value.Text()
		rec.ValueString = &text
	default:
		return nil, wallet.ErrUnknownType
	}
	return json.Marshal(rec)
}

func decodeRecord(name string, data []byte) (wallet.Value, error) {
	var rec credentialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return wallet.Value{}, fmt.Errorf("decoding credential %q: %w", name, err)
	}
	switch {
	case rec.ValueBase64 != nil:
		raw, err := base64.StdEncoding.DecodeString(*rec.ValueBase64)
		if err != nil {
			return wallet.Value{}, fmt.Errorf("decoding credential %q: %w", name, err)
		}
		return wallet.Binary(raw), nil
	case rec.ValueString != nil:
		return wallet.Text(*rec.ValueString), nil
	default:
		return wallet.Value{}, wallet.ErrUnknownType
	}
}

func (s *Store) Put(_ context.Context, name string, value wallet.Value) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}
	data, err := encodeRecord(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(s.prefix))
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
}

func (s *Store) Get(_ context.Context, name string) (wallet.Value, error) {
	if err := wallet.ValidateName(name); err != nil {
		return wallet.Value{}, err
	}
	var value wallet.Value
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.prefix))
		if b == nil {
			return wallet.ErrNotFound
		}
		data := b.Get([]byte(name))
		if data == nil {
			return wallet.ErrNotFound
		}
		var err error
		value, err = decodeRecord(name, data)
		return err
	})
	if err != nil {
		return wallet.Value{}, err
	}
	return value, nil
}

func (s *Store) Remove(_ context.Context, name string) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}
	// Removing from an absent bucket or an absent key succeeds; remove
	// is idempotent.
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.prefix))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}

func (s *Store) Contains(_ context.Context, name string) (bool, error) {
	if err := wallet.ValidateName(name); err != nil {
		return false, err
	}
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.prefix))
		if b == nil {
			return nil
		}
		found = b.Get([]byte(name)) != nil
		return nil
	})
	return found, err
}

func (s *Store) ListNames(_ context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.prefix))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

func (s *Store) GetAll(_ context.Context) (map[string]wallet.Value, error) {
	all := make(map[string]wallet.Value)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.prefix))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			value, err := decodeRecord(string(k), v)
			if err != nil {
				return err
			}
			all[string(k)] = value
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}
