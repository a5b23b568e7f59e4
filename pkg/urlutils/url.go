// Package urlutils validates configured URLs and builds absolute archive links.
package urlutils

import "net/url"

// IsValidURL reports whether urlStr is an absolute http or https URL
func IsValidURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ResolveURL resolves ref against baseURL. An absolute ref is returned unchanged.
func ResolveURL(baseURL, ref string) (string, error) {
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if rel.IsAbs() {
		return ref, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(rel).String(), nil
}
