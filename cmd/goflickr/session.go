package main

//
// Client construction
//

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/goflickr/goflickr/internal/model"
	"github.com/goflickr/goflickr/pkg/flickr"
)

// errNoHomeDir indicates we could not determine the home directory.
var errNoHomeDir = errors.New("cannot determine the home directory")

// session bundles what a subcommand needs.
type session struct {
	client *flickr.Client
	logger *log.Logger
	store  *flickr.CredentialStore
}

// newSession loads the saved credentials, applies the command line
// overrides and creates the client.
func newSession(options *Options, logger *log.Logger) (*session, error) {
	homeDir := gethomedir(options.HomeDir)
	if homeDir == "" {
		return nil, errNoHomeDir
	}
	stateDir := filepath.Join(homeDir, ".goflickr")
	logger.Debugf("goflickr state directory: %s", stateDir)

	store, err := flickr.NewFSCredentialStore(stateDir)
	if err != nil {
		return nil, err
	}
	creds, err := store.Load()
	switch {
	case errors.Is(err, flickr.ErrNoCredentials):
		creds = &model.Credentials{}
	case err != nil:
		return nil, err
	}
	if options.APIKey != "" {
		creds.APIKey = options.APIKey
	}
	if options.Secret != "" {
		creds.SharedSecret = options.Secret
	}

	config := &flickr.Config{
		Credentials: *creds,
		BaseURL:     options.Endpoint,
		Logger:      logger,
	}
	if options.Proxy != "" {
		proxyURL, err := url.Parse(options.Proxy)
		if err != nil {
			return nil, err
		}
		config.Proxy = proxyURL
	}
	client, err := flickr.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &session{client: client, logger: logger, store: store}, nil
}

// context returns the context bounding a single call.
func (options *Options) context() (context.Context, context.CancelFunc) {
	if options.Timeout > 0 {
		return context.WithTimeout(context.Background(), time.Duration(options.Timeout)*time.Second)
	}
	return context.WithCancel(context.Background())
}

// saveCredentials saves the client credentials.
func (sess *session) saveCredentials() error {
	creds := sess.client.Credentials()
	return sess.store.Save(&creds)
}
