package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Client pushes product images to Cloudinary. A nil Client means uploads
// are not configured and /upload reports failure.
type Client struct {
	cld *cloudinary.Cloudinary
}

// NewClient expects a CLOUDINARY_URL style value
// (cloudinary://<api_key>:<api_secret>@<cloud_name>).
func NewClient(url string) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("cloudinary: url not set")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: init: %w", err)
	}
	return &Client{cld: cld}, nil
}

// UploadImage sends a local file and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, localPath string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("product_%d", time.Now().UnixNano()),
		Folder:   "products",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload: %w", err)
	}
	if resp.SecureURL == "" {
		if resp.URL != "" {
			return resp.URL, nil
		}
		return "", fmt.Errorf("cloudinary: empty url in response")
	}
	return resp.SecureURL, nil
}
