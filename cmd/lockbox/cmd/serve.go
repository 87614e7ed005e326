package cmd

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jmcleod/lockbox/api"
	"github.com/jmcleod/lockbox/internal/util"
)

var (
	port          int
	tlsCert       string
	tlsKey        string
	authTokenHash string
	genToken      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wallet HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, closeWallet, err := openWallet(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening wallet: %w", err)
		}
		defer closeWallet()

		tokenHash := authTokenHash
		if genToken {
			token, err := util.RandomChars(26)
			if err != nil {
				return fmt.Errorf("generating token: %w", err)
			}
			tokenHash, err = util.HashToken(token)
			if err != nil {
				return fmt.Errorf("hashing token: %w", err)
			}
			fmt.Printf("Generated bearer token (shown once): %s\n", token)
		}

		var apiOpts []api.Option
		if tokenHash != "" {
			apiOpts = append(apiOpts, api.WithAuthToken(tokenHash))
		}
		a := api.New(w, apiOpts...)

		r := chi.NewRouter()
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Mount("/api/v1", a.Router())

		var tlsConfig *tls.Config
		if tlsCert != "" && tlsKey != "" {
			cert, err := tls.LoadX509KeyPair(tlsCert, tlsKey)
			if err != nil {
				return fmt.Errorf("failed to load TLS key pair: %w", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		} else {
			cert, err := util.GenerateSelfSignedCert()
			if err != nil {
				return fmt.Errorf("failed to generate self-signed certificate: %w", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
			fmt.Println("Using self-signed runtime generated certificate for TLS")
		}

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Starting server on port %d (backend: %s)...\n", port, backend)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return <-done
		case err := <-done:
			return err
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&port, "port", 8443, "port to listen on")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "path to TLS certificate")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "path to TLS private key")
	serveCmd.Flags().StringVar(&authTokenHash, "auth-token-hash", "", "argon2id hash of the API bearer token")
	serveCmd.Flags().BoolVar(&genToken, "gen-token", false, "generate a bearer token at startup and print it once")
	rootCmd.AddCommand(serveCmd)
}
