package flickr

import (
	"context"

	"github.com/goflickr/goflickr/pkg/asyncx"
)

// Tags contains the flickr.tags.* methods.
type Tags struct {
	// GetListPhotoCompleted receives the results of every GetListPhoto call.
	GetListPhotoCompleted asyncx.Event[PhotoTags]

	c *Client
}

type photoTagsPayload struct {
	Photo *PhotoTags `xml:"photo"`
}

// GetListPhotoAsync starts a flickr.tags.getListPhoto call.
func (r *Tags) GetListPhotoAsync(ctx context.Context, photoID string) (*asyncx.Future[PhotoTags], error) {
	return startCall(ctx, r.c, &r.GetListPhotoCompleted, &call[PhotoTags]{
		method:   "flickr.tags.getListPhoto",
		args:     []any{"photo_id", photoID},
		required: []string{"photo_id"},
		decode:   decodeInto(func(p *photoTagsPayload) (PhotoTags, error) {
			return required("photo", p.Photo)
		}),
	})
}

// GetListPhoto is the blocking version of [Tags.GetListPhotoAsync].
func (r *Tags) GetListPhoto(ctx context.Context, photoID string) (PhotoTags, error) {
	return callSync(ctx, &r.GetListPhotoCompleted, func() (*asyncx.Future[PhotoTags], error) {
		return r.GetListPhotoAsync(ctx, photoID)
	})
}
