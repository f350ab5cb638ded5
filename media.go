package mailpress

import "context"

// Media is an item in the CMS media library.
type Media struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// UploadedImage pairs a media library item with the alt text and the
// remote URL of the content image it was copied from. The JSON shape is
// the wire format stored in post meta.
type UploadedImage struct {
	MediaID   int    `json:"media_id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	SourceURL string `json:"-"`
}

// MediaUpload is an image payload to be uploaded to the CMS.
type MediaUpload struct {
	Filename    string
	ContentType string
	AltText     string
	Data        []byte
}

// Validate returns an error if the upload contains invalid fields.
func (m *MediaUpload) Validate() error {
	if m.Filename == "" {
		return Errorf(EINVALID, "media filename required")
	}
	if len(m.Data) == 0 {
		return Errorf(EINVALID, "media data required")
	}
	return nil
}

// MediaService uploads images to the CMS media library.
type MediaService interface {
	// UploadMedia uploads the image and returns the created media item.
	UploadMedia(ctx context.Context, upload *MediaUpload) (*Media, error)
}

// ImageFetcher retrieves image bytes from URLs.
type ImageFetcher interface {
	// FetchImage downloads the image at the given URL and returns its
	// bytes along with the Content-Type reported by the server.
	// The context controls timeout and cancellation.
	FetchImage(ctx context.Context, url string) (data []byte, contentType string, err error)
}
