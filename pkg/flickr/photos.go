package flickr

import (
	"context"
	"strconv"
	"strings"

	"github.com/goflickr/goflickr/pkg/asyncx"
)

// Photos contains the flickr.photos.* methods.
type Photos struct {
	// GetInfoCompleted receives the results of every GetInfo call.
	GetInfoCompleted asyncx.Event[PhotoInfo]

	// SearchCompleted receives the results of every Search call.
	SearchCompleted asyncx.Event[PhotoList]

	// AddTagsCompleted receives the results of every AddTags call.
	AddTagsCompleted asyncx.Event[Empty]

	c *Client
}

type photoInfoPayload struct {
	Photo *PhotoInfo `xml:"photo"`
}

// GetInfoAsync starts a flickr.photos.getInfo call.
func (r *Photos) GetInfoAsync(ctx context.Context, photoID string) (*asyncx.Future[PhotoInfo], error) {
	return startCall(ctx, r.c, &r.GetInfoCompleted, &call[PhotoInfo]{
		method:   "flickr.photos.getInfo",
		args:     []any{"photo_id", photoID},
		required: []string{"photo_id"},
		decode:   decodeInto(func(p *photoInfoPayload) (PhotoInfo, error) {
			return required("photo", p.Photo)
		}),
	})
}

// GetInfo is the blocking version of [Photos.GetInfoAsync].
func (r *Photos) GetInfo(ctx context.Context, photoID string) (PhotoInfo, error) {
	return callSync(ctx, &r.GetInfoCompleted, func() (*asyncx.Future[PhotoInfo], error) {
		return r.GetInfoAsync(ctx, photoID)
	})
}

type photoListPayload struct {
	Photos *PhotoList `xml:"photos"`
}

// nilIfZero maps zero to nil so that the corresponding parameter is dropped.
func nilIfZero(value int) any {
	if value == 0 {
		return nil
	}
	return value
}

func (opts *SearchOptions) args() []any {
	var tags any
	if len(opts.Tags) > 0 {
		tags = strings.Join(opts.Tags, ",")
	}
	return []any{
		"tags", tags,
		"user_id", nilIfEmpty(opts.UserID),
		"per_page", nilIfZero(opts.PerPage),
		"page", nilIfZero(opts.Page),
	}
}

// SearchAsync starts a flickr.photos.search call.
func (r *Photos) SearchAsync(ctx context.Context, opts *SearchOptions) (*asyncx.Future[PhotoList], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	return startCall(ctx, r.c, &r.SearchCompleted, &call[PhotoList]{
		method: "flickr.photos.search",
		args:   opts.args(),
		decode: decodeInto(func(p *photoListPayload) (PhotoList, error) {
			return required("photos", p.Photos)
		}),
	})
}

// Search is the blocking version of [Photos.SearchAsync].
func (r *Photos) Search(ctx context.Context, opts *SearchOptions) (PhotoList, error) {
	return callSync(ctx, &r.SearchCompleted, func() (*asyncx.Future[PhotoList], error) {
		return r.SearchAsync(ctx, opts)
	})
}

// joinTags joins tags with spaces, quoting the tags containing spaces.
func joinTags(tags []string) string {
	quoted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if strings.ContainsAny(tag, " \t") {
			tag = strconv.Quote(tag)
		}
		quoted = append(quoted, tag)
	}
	return strings.Join(quoted, " ")
}

// AddTagsAsync starts a flickr.photos.addTags call. This method requires
// write permission and is sent using POST.
func (r *Photos) AddTagsAsync(ctx context.Context, photoID string, tags []string) (*asyncx.Future[Empty], error) {
	return startCall(ctx, r.c, &r.AddTagsCompleted, &call[Empty]{
		method:   "flickr.photos.addTags",
		post:     true,
		args:     []any{"photo_id", photoID, "tags", joinTags(tags)},
		required: []string{"photo_id", "tags"},
		decode:   decodeEmpty,
	})
}

// AddTags is the blocking version of [Photos.AddTagsAsync].
func (r *Photos) AddTags(ctx context.Context, photoID string, tags []string) error {
	_, err := callSync(ctx, &r.AddTagsCompleted, func() (*asyncx.Future[Empty], error) {
		return r.AddTagsAsync(ctx, photoID, tags)
	})
	return err
}
