package navmux

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// absoluteURL matches targets that carry their own http(s) scheme.
var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// defaultBase is used when no document location is available.
var defaultBase = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// Normalize turns a navigation target into a canonical absolute URL.
//
// An empty input resolves to base itself. An http or https URL is parsed
// as is. Any other input is treated as a relative path: a leading slash is
// added when missing and the result is resolved against the origin of base.
// In hash mode the relative value becomes the fragment of base's path, so
// "users/1" against https://example.com/app yields
// https://example.com/app#/users/1.
//
// A nil base resolves against http://localhost/.
func Normalize(input string, base *url.URL, hashMode bool) (*url.URL, error) {
	if base == nil {
		base = defaultBase
	}

	if input == "" {
		return NormalizeURL(base)
	}

	if absoluteURL.MatchString(input) {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, input, err)
		}
		return NormalizeURL(u)
	}

	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}

	ref := input
	if hashMode {
		p := base.EscapedPath()
		if p == "" {
			p = "/"
		}
		ref = p + "#" + input
	}

	rel, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURL, input, err)
	}

	origin := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}
	return NormalizeURL(origin.ResolveReference(rel))
}

// NormalizeURL returns a canonical copy of u: lowercase scheme, IDNA
// ASCII host without the scheme's default port, and "/" for an empty path.
func NormalizeURL(u *url.URL) (*url.URL, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil url", ErrInvalidURL)
	}

	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}

	c.Scheme = strings.ToLower(c.Scheme)
	if c.Host != "" {
		c.Host = canonicalHost(c.Scheme, c.Host)
		if c.Path == "" {
			c.Path = "/"
			c.RawPath = ""
		}
	}

	return &c, nil
}

// canonicalHost lowercases hostport, converts internationalized names to
// their ASCII form, and drops the default port for http and https.
func canonicalHost(scheme, hostport string) string {
	host, port := hostport, ""
	if h, p, err := net.SplitHostPort(hostport); err == nil {
		host, port = h, p
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")

	if net.ParseIP(host) == nil {
		if ascii, err := idna.Lookup.ToASCII(host); err == nil {
			host = ascii
		}
	}
	host = strings.ToLower(host)

	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	if port != "" {
		return net.JoinHostPort(host, port)
	}
	if strings.Contains(host, ":") {
		return "[" + host + "]"
	}
	return host
}

// DispatchPath derives the string route patterns are matched against.
// In normal mode that is the escaped path, query and fragment. In hash
// mode it is the fragment alone, without the leading '#', and "/" when
// there is no fragment.
func DispatchPath(u *url.URL, hashMode bool) string {
	if hashMode {
		if f := u.EscapedFragment(); f != "" {
			return f
		}
		return "/"
	}

	var b strings.Builder
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	b.WriteString(p)
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.EscapedFragment())
	}
	return b.String()
}

// TemplateKey normalizes a route template the same way navigation targets
// are normalized, so "users/:id" and "/users/:id" name the same route.
// Templates are always normalized as paths: switching a router between
// hash and path mode never changes the key of a registered route.
func TemplateKey(template string) (string, error) {
	u, err := Normalize(template, defaultBase, false)
	if err != nil {
		return "", err
	}
	return DispatchPath(u, false), nil
}

// rawQuery returns the query string that belongs to the dispatch path.
// In hash mode the query lives inside the fragment.
func rawQuery(u *url.URL, hashMode bool) string {
	if !hashMode {
		return u.RawQuery
	}
	_, q, _ := strings.Cut(u.Fragment, "?")
	return q
}
