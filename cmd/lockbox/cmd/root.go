package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/wallet"
	boltwallet "github.com/jmcleod/lockbox/wallet/bbolt"
	mongowallet "github.com/jmcleod/lockbox/wallet/mongo"
)

// Version is the release version stamped into the banner.
const Version = "0.1.0"

var (
	backend    string
	mongoURI   string
	database   string
	collection string
	namePrefix string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "lockbox",
	Short: "Lockbox is a pluggable credential wallet",
	Long: `A credential wallet storing named secrets in MongoDB or a local
BBolt file. Complete documentation is available at
https://github.com/jmcleod/lockbox`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&backend, "backend", "bbolt", "storage backend: mongo or bbolt")
	pf.StringVar(&mongoURI, "uri", "", "MongoDB connection URI (mongo backend)")
	pf.StringVar(&database, "database", "", "MongoDB database name (mongo backend)")
	pf.StringVar(&collection, "collection", "credentials", "MongoDB collection name (mongo backend)")
	pf.StringVar(&namePrefix, "prefix", "default", "namespace prefix scoping this wallet's keys")
	pf.StringVar(&dataDir, "data-dir", "data", "data directory (bbolt backend)")
}

// openWallet builds the wallet selected by the persistent flags. The
// returned func releases the underlying connection.
func openWallet(ctx context.Context) (wallet.Wallet, func(), error) {
	switch backend {
	case "mongo":
		s, err := mongowallet.NewFromConfig(ctx, &mongowallet.Config{
			URI:            mongoURI,
			Database:       database,
			CollectionName: collection,
			NamePrefix:     namePrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close(context.Background()) }, nil
	case "bbolt":
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := boltwallet.NewFromFile(filepath.Join(dataDir, "wallet.db"), namePrefix, nil)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}
