package apitest

import (
	"testing"

	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/structs"
)

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// PNGFile returns a valid one pixel PNG upload.
func PNGFile(name string) *structs.File {
	return &structs.File{
		Name:        name,
		ContentType: "image/png",
		Data:        append([]byte(nil), pngPixel...),
	}
}

// Client returns an API client for the server using ts for bearer tokens.
func (s *Server) Client(t testing.TB, ts client.TokenSource) *client.Client {
	t.Helper()
	c, err := client.New(s.URL, client.WithTokenSource(ts))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}
