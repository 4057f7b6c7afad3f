package flickr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goflickr/goflickr/internal/kvstore"
	"github.com/goflickr/goflickr/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestCredentialStore(t *testing.T) {
	creds := &model.Credentials{APIKey: "key", SharedSecret: "secret", AuthToken: "token"}

	t.Run("in memory", func(t *testing.T) {
		cs := &CredentialStore{Store: &kvstore.Memory{}}
		if _, err := cs.Load(); !errors.Is(err, ErrNoCredentials) {
			t.Fatal("unexpected error", err)
		}
		if err := cs.Save(creds); err != nil {
			t.Fatal(err)
		}
		got, err := cs.Load()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(creds, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("on the file system", func(t *testing.T) {
		dir := t.TempDir()
		cs, err := NewFSCredentialStore(dir)
		if err != nil {
			t.Fatal(err)
		}
		if err := cs.Save(creds); err != nil {
			t.Fatal(err)
		}
		other, err := NewFSCredentialStore(dir)
		if err != nil {
			t.Fatal(err)
		}
		got, err := other.Load()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(creds, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a hand-edited document", func(t *testing.T) {
		doc := `{
	// from the developer console
	"api_key": "key",
	"shared_secret": "secret",
	"auth_token": "token",
}`
		store := &kvstore.Memory{}
		if err := store.Set(CredentialsKey, []byte(doc)); err != nil {
			t.Fatal(err)
		}
		got, err := (&CredentialStore{Store: store}).Load()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(creds, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a corrupt document", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, CredentialsKey), []byte("{"), 0600); err != nil {
			t.Fatal(err)
		}
		cs, err := NewFSCredentialStore(dir)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := cs.Load(); err == nil {
			t.Fatal("expected an error")
		}
	})
}
