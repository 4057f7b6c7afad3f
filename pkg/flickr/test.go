package flickr

import (
	"context"
	"sort"

	"github.com/goflickr/goflickr/pkg/asyncx"
)

// Test contains the flickr.test.* methods.
type Test struct {
	// NullCompleted receives the results of every Null call.
	NullCompleted asyncx.Event[Empty]

	// EchoCompleted receives the results of every Echo call.
	EchoCompleted asyncx.Event[map[string]string]

	// LoginCompleted receives the results of every Login call.
	LoginCompleted asyncx.Event[User]

	c *Client
}

// NullAsync starts a flickr.test.null call, which only succeeds when the
// client holds a valid auth token.
func (r *Test) NullAsync(ctx context.Context) (*asyncx.Future[Empty], error) {
	return startCall(ctx, r.c, &r.NullCompleted, &call[Empty]{
		method: "flickr.test.null",
		decode: decodeEmpty,
	})
}

// Null is the blocking version of [Test.NullAsync].
func (r *Test) Null(ctx context.Context) error {
	_, err := callSync(ctx, &r.NullCompleted, func() (*asyncx.Future[Empty], error) {
		return r.NullAsync(ctx)
	})
	return err
}

type echoPayload struct {
	Items []echoItem `xml:",any"`
}

// EchoAsync starts a flickr.test.echo call. The result maps every
// parameter the service received, including method and api_key, to its value.
func (r *Test) EchoAsync(ctx context.Context, values map[string]string) (*asyncx.Future[map[string]string], error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	args := make([]any, 0, 2*len(names))
	for _, name := range names {
		args = append(args, name, values[name])
	}
	return startCall(ctx, r.c, &r.EchoCompleted, &call[map[string]string]{
		method: "flickr.test.echo",
		args:   args,
		decode: decodeInto(func(p *echoPayload) (map[string]string, error) {
			out := make(map[string]string, len(p.Items))
			for _, item := range p.Items {
				out[item.XMLName.Local] = item.Value
			}
			return out, nil
		}),
	})
}

// Echo is the blocking version of [Test.EchoAsync].
func (r *Test) Echo(ctx context.Context, values map[string]string) (map[string]string, error) {
	return callSync(ctx, &r.EchoCompleted, func() (*asyncx.Future[map[string]string], error) {
		return r.EchoAsync(ctx, values)
	})
}

type userPayload struct {
	User *User `xml:"user"`
}

func decodeUser(p *userPayload) (User, error) {
	return required("user", p.User)
}

// LoginAsync starts a flickr.test.login call returning the user owning
// the auth token.
func (r *Test) LoginAsync(ctx context.Context) (*asyncx.Future[User], error) {
	return startCall(ctx, r.c, &r.LoginCompleted, &call[User]{
		method: "flickr.test.login",
		decode: decodeInto(decodeUser),
	})
}

// Login is the blocking version of [Test.LoginAsync].
func (r *Test) Login(ctx context.Context) (User, error) {
	return callSync(ctx, &r.LoginCompleted, func() (*asyncx.Future[User], error) {
		return r.LoginAsync(ctx)
	})
}
