// Package mongo implements wallet.Wallet backed by a MongoDB collection.
//
// Each credential is one document keyed by the (name, path) pair, where
// path is the namespace prefix fixed at construction time. Two stores
// with different prefixes can share a collection without observing each
// other's keys. Binary values are stored base64-encoded in valueBase64,
// text values verbatim in valueString; exactly one of the two fields is
// present per document. The field names are an interop contract with
// existing deployments and must not change.
package mongo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jmcleod/lockbox/wallet"
)

// Construction error message texts are asserted on by existing consumers
// and keep their original casing.
var (
	ErrNeedConfig     = errors.New("Need configuration")
	ErrNeedURI        = errors.New("Need an URI to connect to MongoDB")
	ErrNeedCollection = errors.New("Need a collection name for the wallet")
	ErrNeedNamePrefix = errors.New("Need a namePrefix in options")
)

const defaultDatabase = "wallet"

// Config holds the connection parameters for a MongoDB-backed wallet.
type Config struct {
	// URI is the MongoDB connection string.
	URI string
	// Database names the database holding the wallet collection.
	// Empty selects "wallet".
	Database string
	// CollectionName names the collection credentials are stored in.
	CollectionName string
	// NamePrefix scopes this store's keys within the collection.
	NamePrefix string
	// ClientOptions are passed through to the driver unmodified. The
	// URI is applied on top of them.
	ClientOptions *options.ClientOptions
}

// Validate checks the construction parameters. The order and identity of
// the checks is fixed: nil config, then URI, then collection name, then
// name prefix.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNeedConfig
	}
	if c.URI == "" {
		return ErrNeedURI
	}
	if c.CollectionName == "" {
		return ErrNeedCollection
	}
	if c.NamePrefix == "" {
		return ErrNeedNamePrefix
	}
	return nil
}

// Store implements wallet.Wallet backed by a MongoDB collection. The
// collection handle is shared by all operations; connection pooling and
// reconnection are the driver's responsibility.
type Store struct {
	coll   *mongo.Collection
	prefix string

	// client is set only when the store opened the connection itself,
	// via NewFromConfig. Stores built with New share a caller-owned
	// collection and never disconnect it.
	client *mongo.Client
}

var _ wallet.Wallet = (*Store)(nil)

// credentialDoc is the persisted document shape.
type credentialDoc struct {
	Name        string  `bson:"name"`
	Path        string  `bson:"path"`
	ValueBase64 *string `bson:"valueBase64,omitempty"`
	ValueString *string `bson:"valueString,omitempty"`
}

// New returns a Store bound to the given collection, scoped by namePrefix.
func New(coll *mongo.Collection, namePrefix string) *Store {
	return &Store{coll: coll, prefix: namePrefix}
}

// NewFromConfig validates cfg, connects to MongoDB and returns a Store
// that owns the connection. Close releases it.
func NewFromConfig(ctx context.Context, cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := cfg.ClientOptions
	if opts == nil {
		opts = options.Client()
	}
	client, err := mongo.Connect(ctx, opts.ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = defaultDatabase
	}
	s := New(client.Database(db).Collection(cfg.CollectionName), cfg.NamePrefix)
	s.client = client
	return s, nil
}

// Close disconnects the underlying client when the store owns it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// NamePrefix returns the namespace prefix this store is scoped to.
func (s *Store) NamePrefix() string { return s.prefix }

func (s *Store) filter(name string) bson.D {
	return bson.D{{Key: "name", Value: name}, {Key: "path", Value: s.prefix}}
}

func (s *Store) Put(ctx context.Context, name string, value wallet.Value) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}

	doc := credentialDoc{Name: name, Path: s.prefix}
	switch value.Kind() {
	case wallet.KindBinary:
		enc := base64.StdEncoding.EncodeToString(value.Bytes())
		doc.ValueBase64 = &enc
	case wallet.KindText:
		text := value.Text()
		doc.ValueString = &text
	default:
		return wallet.ErrUnknownType
	}

	// Whole-document replace: a type change must not leave a stale
	// valueBase64/valueString from the previous value behind. The upsert
	// makes concurrent same-key writers resolve last-write-wins without a
	// read-modify-write round trip.
	_, err := s.coll.ReplaceOne(ctx, s.filter(name), doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("storing credential %q: %w", name, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (wallet.Value, error) {
	if err := wallet.ValidateName(name); err != nil {
		return wallet.Value{}, err
	}

	var doc credentialDoc
	err := s.coll.FindOne(ctx, s.filter(name)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return wallet.Value{}, wallet.ErrNotFound
	}
	if err != nil {
		return wallet.Value{}, fmt.Errorf("fetching credential %q: %w", name, err)
	}
	return decodeDoc(&doc)
}

func decodeDoc(doc *credentialDoc) (wallet.Value, error) {
	switch {
	case doc.ValueBase64 != nil:
		raw, err := base64.StdEncoding.DecodeString(*doc.ValueBase64)
		if err != nil {
			return wallet.Value{}, fmt.Errorf("decoding credential %q: %w", doc.Name, err)
		}
		return wallet.Binary(raw), nil
	case doc.ValueString != nil:
		return wallet.Text(*doc.ValueString), nil
	default:
		// Unreachable under correct writers; guards against documents
		// written by something other than Put.
		return wallet.Value{}, wallet.ErrUnknownType
	}
}

func (s *Store) Remove(ctx context.Context, name string) error {
	if err := wallet.ValidateName(name); err != nil {
		return err
	}
	// Deleting an absent key succeeds; remove is idempotent.
	if _, err := s.coll.DeleteOne(ctx, s.filter(name)); err != nil {
		return fmt.Errorf("removing credential %q: %w", name, err)
	}
	return nil
}

func (s *Store) Contains(ctx context.Context, name string) (bool, error) {
	if err := wallet.ValidateName(name); err != nil {
		return false, err
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})
	err := s.coll.FindOne(ctx, s.filter(name), opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking credential %q: %w", name, err)
	}
	return true, nil
}

func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 0}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "path", Value: s.prefix}}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding credential name: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	return names, nil
}

func (s *Store) GetAll(ctx context.Context) (map[string]wallet.Value, error) {
	names, err := s.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[string]wallet.Value, len(names))
	for _, name := range names {
		v, err := s.Get(ctx, name)
		if errors.Is(err, wallet.ErrNotFound) {
			// Removed between the listing and the fetch; absent from
			// the snapshot rather than an error.
			continue
		}
		if err != nil {
			return nil, err
		}
		all[name] = v
	}
	return all, nil
}
