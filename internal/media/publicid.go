package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// PublicIDFromURL recovers an asset's public ID from its delivery URL: the
// last two path segments, with any file extension stripped from the final
// one. Cloudinary delivery URLs carry the folder and asset name there, e.g.
//
//	https://res.cloudinary.com/demo/image/upload/v1700000000/products/4f9d.jpg
//
// yields "products/4f9d".
func PublicIDFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse asset URL: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return "", fmt.Errorf("asset URL %q has no folder/name segments", rawURL)
	}

	folder := segments[len(segments)-2]
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(name, path.Ext(name))
	if folder == "" || name == "" {
		return "", fmt.Errorf("asset URL %q has empty folder/name segments", rawURL)
	}

	return folder + "/" + name, nil
}
