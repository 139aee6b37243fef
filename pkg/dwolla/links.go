// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package dwolla

import (
	"net/url"
	"path"
	"strings"
)

// Link is a HAL hyperlink. Dwolla identifies every resource by its href.
type Link struct {
	Href         string `json:"href"`
	Type         string `json:"type,omitempty"`
	ResourceType string `json:"resource-type,omitempty"`
}

// Links maps relation names (self, source, destination, ...) to hyperlinks.
type Links map[string]Link

// IDFromLocation returns the final path segment of a resource URL, such as the
// Location header of a created customer. Values without a scheme are returned trimmed.
// An empty string is returned for values which aren't a single path segment.
func IDFromLocation(location string) string {
	id := strings.TrimSpace(location)
	if u, err := url.Parse(id); err == nil && u.Scheme != "" {
		id = path.Base(u.Path)
	}
	if id == "." || id == ".." || strings.Contains(id, "/") {
		return ""
	}
	return id
}
