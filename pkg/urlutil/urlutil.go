// Package urlutil provides URL path joining and query merging helpers.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kitmi/k-utils/pkg/errors"
)

// Join appends path parts to a base URL, normalizing slashes between
// segments while leaving the base's scheme, host, and query untouched.
// Parts are taken in escaped form, so percent-escapes in the base or the
// parts pass through unchanged.
func Join(base string, parts ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBadURL, "invalid base URL %q", base)
	}

	p := u.EscapedPath()
	for _, part := range parts {
		if part == "" {
			continue
		}
		p = strings.TrimSuffix(p, "/") + "/" + strings.Trim(part, "/")
	}
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBadURL, "invalid escape in path %q", p)
	}
	// Path and RawPath must stay consistent or String re-escapes the
	// already-escaped form
	u.Path = unescaped
	if unescaped == p {
		u.RawPath = ""
	} else {
		u.RawPath = p
	}
	return u.String(), nil
}

// MergeQuery adds parameters to a URL's query string, overriding existing
// keys of the same name. Values are rendered with fmt; a nil value keeps
// the key with an empty value.
func MergeQuery(rawURL string, params map[string]any) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBadURL, "invalid URL %q", rawURL)
	}

	q := u.Query()
	for k, v := range params {
		if v == nil {
			q.Set(k, "")
			continue
		}
		q.Set(k, fmt.Sprintf("%v", v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
