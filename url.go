package textgrab

import (
	"net/url"
	"regexp"
)

// urlPattern accepts http(s) and ftp(s) URLs whose host is a dotted domain
// name, localhost, or a dotted-quad address. Octets are not range checked.
var urlPattern = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)` +
	`|localhost` +
	`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// ValidURL reports whether s is a well-formed http, https, ftp or ftps URL.
func ValidURL(s string) bool {
	return urlPattern.MatchString(s)
}

// Host returns the authority of rawURL (host plus optional port), which is
// the key used to look up per-site selectors.
func Host(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return u.Host, nil
}
