package flickr

import (
	"encoding/json"
	"errors"

	"github.com/goflickr/goflickr/internal/kvstore"
	"github.com/goflickr/goflickr/internal/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// CredentialsKey is the key under which [CredentialStore] saves credentials.
const CredentialsKey = "credentials.json"

// ErrNoCredentials indicates that no credentials were saved yet.
var ErrNoCredentials = errors.New("flickr: no saved credentials")

// CredentialStore persists [model.Credentials] as a JSON document. Load
// also accepts comments and trailing commas.
type CredentialStore struct {
	// Store is the MANDATORY underlying store.
	Store model.KeyValueStore
}

// NewFSCredentialStore returns a [*CredentialStore] saving into dir.
func NewFSCredentialStore(dir string) (*CredentialStore, error) {
	store, err := kvstore.NewFS(dir)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "opening credentials directory")
	}
	return &CredentialStore{Store: store}, nil
}

// Load returns the saved credentials or [ErrNoCredentials].
func (cs *CredentialStore) Load() (*model.Credentials, error) {
	data, err := cs.Store.Get(CredentialsKey)
	if errors.Is(err, kvstore.ErrNoSuchKey) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "reading credentials")
	}
	// hand-edited documents may contain comments and trailing commas
	data, err = hujson.Standardize(data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "parsing json")
	}
	var creds model.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, pkgerrors.Wrap(err, "parsing json")
	}
	return &creds, nil
}

// Save replaces the saved credentials with creds.
func (cs *CredentialStore) Save(creds *model.Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "marshalling json")
	}
	return pkgerrors.Wrap(cs.Store.Set(CredentialsKey, data), "writing credentials")
}
