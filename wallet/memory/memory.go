// Package memory provides a thread-safe in-memory implementation of
// wallet.Wallet. Suitable for testing, demos, and single-process use.
package memory

import (
	"context"
	"sync"

	"github.com/jmcleod/lockbox/wallet"
)

// Collection is the shared in-memory equivalent of a document collection.
// Multiple stores with different name prefixes can share one Collection
// without observing each other's keys.
type Collection struct {
	mu   sync.RWMutex
	data map[string]map[string]wallet.Value // prefix -> name -> value
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{data: make(map[string]map[string]wallet.Value)}
}

// Store implements wallet.Wallet over an in-memory Collection.
type Store struct {
	coll   *Collection
	prefix string
}

var _ wallet.Wallet = (*Store)(nil)

// New returns a Store scoped to namePrefix within coll.
func New(coll *Collection, namePrefix string) *Store {
	return &Store{coll: coll, prefix: namePrefix}
}

// NewStandalone returns a Store over its own private Collection.
func NewStandalone(namePrefix string) *Store {
	return New(NewCollection(), namePrefix)
}

// Values are immutable (Binary copies in, Bytes copies out), so they are
// stored and returned directly without cloning.

func (s *Store) Put(_ context.Context, name string, value wallet.Value) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}
	if value.Kind() != wallet.KindText && value.Kind() != wallet.KindBinary {
		return wallet.ErrUnknownType
	}

	s.coll.mu.Lock()
	defer s.coll.mu.Unlock()
	scope, ok := s.coll.data[s.prefix]
	if !ok {
		scope = make(map[string]wallet.Value)
		s.coll.data[s.prefix] = scope
	}
	scope[name] = value
	return nil
}

func (s *Store) Get(_ context.Context, name string) (wallet.Value, error) {
	if err := wallet.ValidateName(name); err != nil {
		return wallet.Value{}, err
	}

	s.coll.mu.RLock()
	defer s.coll.mu.RUnlock()
	v, ok := s.coll.data[s.prefix][name]
	if !ok {
		return wallet.Value{}, wallet.ErrNotFound
	}
	return v, nil
}

func (s *Store) Remove(_ context.Context, name string) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}

	s.coll.mu.Lock()
	defer s.coll.mu.Unlock()
	delete(s.coll.data[s.prefix], name)
	return nil
}

func (s *Store) Contains(_ context.Context, name string) (bool, error) {
	if err := wallet.ValidateName(name); err != nil {
		return false, err
	}

	s.coll.mu.RLock()
	defer s.coll.mu.RUnlock()
	_, ok := s.coll.data[s.prefix][name]
	return ok, nil
}

func (s *Store) ListNames(_ context.Context) ([]string, error) {
	s.coll.mu.RLock()
	defer s.coll.mu.RUnlock()
	var names []string
	for name := range s.coll.data[s.prefix] {
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) GetAll(_ context.Context) (map[string]wallet.Value, error) {
	s.coll.mu.RLock()
	defer s.coll.mu.RUnlock()
	scope := s.coll.data[s.prefix]
	all := make(map[string]wallet.Value, len(scope))
	for name, v := range scope {
		all[name] = v
	}
	return all, nil
}
