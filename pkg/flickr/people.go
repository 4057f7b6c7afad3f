package flickr

import (
	"context"

	"github.com/goflickr/goflickr/pkg/asyncx"
)

// People contains the flickr.people.* methods.
type People struct {
	// FindByUsernameCompleted receives the results of every FindByUsername call.
	FindByUsernameCompleted asyncx.Event[User]

	// FindByEmailCompleted receives the results of every FindByEmail call.
	FindByEmailCompleted asyncx.Event[User]

	// GetInfoCompleted receives the results of every GetInfo call.
	GetInfoCompleted asyncx.Event[Person]

	c *Client
}

// FindByUsernameAsync starts a flickr.people.findByUsername call.
func (r *People) FindByUsernameAsync(ctx context.Context, username string) (*asyncx.Future[User], error) {
	return startCall(ctx, r.c, &r.FindByUsernameCompleted, &call[User]{
		method:   "flickr.people.findByUsername",
		args:     []any{"username", username},
		required: []string{"username"},
		decode:   decodeInto(decodeUser),
	})
}

// FindByUsername is the blocking version of [People.FindByUsernameAsync].
func (r *People) FindByUsername(ctx context.Context, username string) (User, error) {
	return callSync(ctx, &r.FindByUsernameCompleted, func() (*asyncx.Future[User], error) {
		return r.FindByUsernameAsync(ctx, username)
	})
}

// FindByEmailAsync starts a flickr.people.findByEmail call.
func (r *People) FindByEmailAsync(ctx context.Context, email string) (*asyncx.Future[User], error) {
	return startCall(ctx, r.c, &r.FindByEmailCompleted, &call[User]{
		method:   "flickr.people.findByEmail",
		args:     []any{"find_email", email},
		required: []string{"find_email"},
		decode:   decodeInto(decodeUser),
	})
}

// FindByEmail is the blocking version of [People.FindByEmailAsync].
func (r *People) FindByEmail(ctx context.Context, email string) (User, error) {
	return callSync(ctx, &r.FindByEmailCompleted, func() (*asyncx.Future[User], error) {
		return r.FindByEmailAsync(ctx, email)
	})
}

type personPayload struct {
	Person *Person `xml:"person"`
}

// GetInfoAsync starts a flickr.people.getInfo call.
func (r *People) GetInfoAsync(ctx context.Context, userID string) (*asyncx.Future[Person], error) {
	return startCall(ctx, r.c, &r.GetInfoCompleted, &call[Person]{
		method:   "flickr.people.getInfo",
		args:     []any{"user_id", userID},
		required: []string{"user_id"},
		decode:   decodeInto(func(p *personPayload) (Person, error) {
			return required("person", p.Person)
		}),
	})
}

// GetInfo is the blocking version of [People.GetInfoAsync].
func (r *People) GetInfo(ctx context.Context, userID string) (Person, error) {
	return callSync(ctx, &r.GetInfoCompleted, func() (*asyncx.Future[Person], error) {
		return r.GetInfoAsync(ctx, userID)
	})
}
