// Package version exposes build information for the blog client.
//
// Values are set at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/blogclient/version.Version=1.2.3 \
//	  -X github.com/ncobase/blogclient/version.Branch=main \
//	  -X github.com/ncobase/blogclient/version.Revision=abc123 \
//	  -X 'github.com/ncobase/blogclient/version.BuiltAt=$(date)'" ./cmd/blog
//
// Unset values fall back to the vcs stamps of the module build info.
package version
