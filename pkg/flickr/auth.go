package flickr

import (
	"context"
	"errors"

	"github.com/goflickr/goflickr/internal/apiparam"
	"github.com/goflickr/goflickr/internal/apisig"
	"github.com/goflickr/goflickr/pkg/asyncx"
)

// ErrMissingSharedSecret indicates that an operation requires signing
// but the client has no shared secret.
var ErrMissingSharedSecret = errors.New("flickr: missing shared secret")

// Permission levels accepted by [Auth.LoginURL].
const (
	PermsRead   = "read"
	PermsWrite  = "write"
	PermsDelete = "delete"
)

// Auth contains the flickr.auth.* methods.
//
// The login flow is: GetFrob, send the user to LoginURL, then GetToken
// with the same frob and pass the token to [Client.SetAuthToken].
type Auth struct {
	// GetFrobCompleted receives the results of every GetFrob call.
	GetFrobCompleted asyncx.Event[string]

	// GetTokenCompleted receives the results of every GetToken call.
	GetTokenCompleted asyncx.Event[AuthInfo]

	// CheckTokenCompleted receives the results of every CheckToken call.
	CheckTokenCompleted asyncx.Event[AuthInfo]

	c *Client
}

type frobPayload struct {
	Frob *string `xml:"frob"`
}

// GetFrobAsync starts a flickr.auth.getFrob call.
func (r *Auth) GetFrobAsync(ctx context.Context) (*asyncx.Future[string], error) {
	return startCall(ctx, r.c, &r.GetFrobCompleted, &call[string]{
		method: "flickr.auth.getFrob",
		decode: decodeInto(func(p *frobPayload) (string, error) {
			return required("frob", p.Frob)
		}),
	})
}

// GetFrob is the blocking version of [Auth.GetFrobAsync].
func (r *Auth) GetFrob(ctx context.Context) (string, error) {
	return callSync(ctx, &r.GetFrobCompleted, func() (*asyncx.Future[string], error) {
		return r.GetFrobAsync(ctx)
	})
}

type authPayload struct {
	Auth *AuthInfo `xml:"auth"`
}

func decodeAuth(p *authPayload) (AuthInfo, error) {
	return required("auth", p.Auth)
}

// GetTokenAsync starts a flickr.auth.getToken call exchanging an
// approved frob for an auth token.
func (r *Auth) GetTokenAsync(ctx context.Context, frob string) (*asyncx.Future[AuthInfo], error) {
	return startCall(ctx, r.c, &r.GetTokenCompleted, &call[AuthInfo]{
		method:   "flickr.auth.getToken",
		args:     []any{"frob", frob},
		required: []string{"frob"},
		decode:   decodeInto(decodeAuth),
	})
}

// GetToken is the blocking version of [Auth.GetTokenAsync].
func (r *Auth) GetToken(ctx context.Context, frob string) (AuthInfo, error) {
	return callSync(ctx, &r.GetTokenCompleted, func() (*asyncx.Future[AuthInfo], error) {
		return r.GetTokenAsync(ctx, frob)
	})
}

// CheckTokenAsync starts a flickr.auth.checkToken call for the current token.
func (r *Auth) CheckTokenAsync(ctx context.Context) (*asyncx.Future[AuthInfo], error) {
	return startCall(ctx, r.c, &r.CheckTokenCompleted, &call[AuthInfo]{
		method: "flickr.auth.checkToken",
		decode: decodeInto(decodeAuth),
	})
}

// CheckToken is the blocking version of [Auth.CheckTokenAsync].
func (r *Auth) CheckToken(ctx context.Context) (AuthInfo, error) {
	return callSync(ctx, &r.CheckTokenCompleted, func() (*asyncx.Future[AuthInfo], error) {
		return r.CheckTokenAsync(ctx)
	})
}

// LoginURL returns the signed URL where the user approves frob with
// the given perms. It does not perform any network activity.
func (r *Auth) LoginURL(frob, perms string) (string, error) {
	creds := r.c.Credentials()
	if creds.SharedSecret == "" {
		return "", ErrMissingSharedSecret
	}
	params := apiparam.List{
		apiparam.MustNew("api_key", creds.APIKey),
		apiparam.MustNew("perms", perms),
		apiparam.MustNew("frob", frob),
	}
	return apisig.BuildURL(r.c.authURL, params, creds.SharedSecret)
}
