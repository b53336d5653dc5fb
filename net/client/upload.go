package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/logging/logger"
)

// Upload PUTs raw bytes to a pre-signed URL. The Content-Type header must
// match the type the URL was signed for. No bearer token is sent: the
// credentials are in the URL.
func (c *Client) Upload(ctx context.Context, uploadURL, contentType string, data []byte) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return ecode.Upload(0, err)
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", strconv.Itoa(len(data)))

	res, err := c.http.Do(req)
	if err != nil {
		return ecode.Upload(0, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		logger.Warnf(ctx, "upload rejected with %d: %s", res.StatusCode, bytes.TrimSpace(detail))
		return ecode.Upload(res.StatusCode, nil)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	logger.Debugf(ctx, "uploaded %d bytes in %s", len(data), time.Since(start))
	return nil
}
