package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"gallery/config"
)

// Store moves blobs to and from the asset store. Paths are relative to
// the store root (e.g. "gallery/169...-ab12.jpg"); the public URL for a
// path is PublicURLFor(path).
type Store interface {
	// Upload writes the blob and returns its public URL. Callers must
	// not persist metadata referencing the blob if this fails.
	Upload(ctx context.Context, reader io.Reader, remotePath string) (string, error)
	// Delete removes the blob. Callers treat failures as non-fatal.
	Delete(ctx context.Context, remotePath string) error
}

var active Store

func Init() {
	switch config.STORAGE_TYPE {
	case "disk":
		active = NewDiskStore()
	case "ftp":
		active = NewFTPStore()
	case "s3":
		active = NewS3Store()
	default:
		panic(fmt.Sprintf("unknown STORAGE_TYPE %q", config.STORAGE_TYPE))
	}
	log.Printf("Asset store: %s", config.STORAGE_TYPE)
}

func Get() Store {
	if active == nil {
		panic("storage.Init has not been called")
	}
	return active
}

// PublicURLFor maps a store-relative path to the URL it is served under.
func PublicURLFor(remotePath string) string {
	base := strings.TrimSuffix(config.PUBLIC_BASE_URL, "/")
	return base + "/" + strings.TrimPrefix(remotePath, "/")
}

// PathFromPublicURL is the inverse of PublicURLFor: it recovers the
// store-relative path from a stored image URL. Unparseable input is
// returned unchanged so the caller's best-effort delete can still log
// something meaningful.
func PathFromPublicURL(rawURL string) string {
	base := strings.TrimSuffix(config.PUBLIC_BASE_URL, "/")
	if base != "" && strings.HasPrefix(rawURL, base+"/") {
		return strings.TrimPrefix(rawURL, base+"/")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if bu, err := url.Parse(base); err == nil && bu.Path != "" && strings.HasPrefix(u.Path, bu.Path+"/") {
		return strings.TrimPrefix(u.Path, bu.Path+"/")
	}
	return strings.TrimPrefix(u.Path, "/")
}
