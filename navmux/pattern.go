package navmux

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Template syntax rewriters. They run in the order listed in Compile.
var (
	escapeRegExp  = regexp.MustCompile(`[\-{}\[\]+?.,\\^$|#\s]`)
	optionalParam = regexp.MustCompile(`\((.*?)\)`)
	namedParam    = regexp.MustCompile(`(\(\?)?:\w+`)
	splatParam    = regexp.MustCompile(`\*\w+`)
)

// Patterns substituted for template tokens.
const (
	namedParamPattern = `([^/?]+)`
	splatParamPattern = `([^?]*?)`
	querySuffix       = `(?:\?([\s\S]*))?$`
)

// optionalDelims strips optional-group parentheses from a template.
var optionalDelims = strings.NewReplacer("(", "", ")", "")

// Matcher is a compiled route template.
type Matcher struct {
	template string
	regexp   *regexp.Regexp
	// names holds one entry per capture group. Empty entries belong to
	// groups that are not route parameters (such as the trailing query).
	names []string
}

// Compile converts a route template into a Matcher.
//
// The template syntax is:
//
//	:name    a parameter matching one path segment ([^/?]+)
//	*name    a splat matching any run of characters except '?', lazily
//	(...)    an optional group, matched zero or one time
//
// Everything else matches literally. The whole dispatch path must match,
// optionally followed by a query string.
//
// Compile does not parse the template. It rewrites the template text
// into a regular expression in five passes, and the order of the passes
// matters:
//
//  1. regexp metacharacters outside the routing syntax are escaped
//  2. (...) becomes (?:...)?
//  3. :name becomes ([^/?]+), except where the token directly follows
//     "(?", so the "(?:" emitted by pass 2 is never read as a parameter
//  4. *name becomes ([^?]*?)
//  5. the result is anchored and given an optional query suffix
//
// Parameter names are then recovered by running the compiled regexp
// against the template itself (see Names).
func Compile(template string) (*Matcher, error) {
	src := escapeRegExp.ReplaceAllString(template, `\${0}`)
	src = optionalParam.ReplaceAllString(src, `(?:${1})?`)
	src = namedParam.ReplaceAllStringFunc(src, func(tok string) string {
		if strings.HasPrefix(tok, "(?") {
			return tok
		}
		return namedParamPattern
	})
	src = splatParam.ReplaceAllLiteralString(src, splatParamPattern)

	re, err := compileRegexp("^" + src + querySuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPattern, template, err)
	}

	names := selfMatchNames(re, template)
	if err := checkDuplicateParams(names); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPattern, template, err)
	}

	return &Matcher{
		template: template,
		regexp:   re,
		names:    names,
	}, nil
}

// selfMatchNames recovers parameter names by matching re against the
// template it was compiled from.
//
// Every :name and *name token in the template is matched by exactly the
// capture group it was rewritten into, so capture group i of the
// self-match holds the token text for group i of any real match. The
// template is matched in its expanded form, with optional-group
// parentheses removed, so tokens inside optional groups are captured too.
//
// Groups whose self-match text is not a token (the query suffix, or a
// group that did not participate) are left unnamed. When the template
// does not match itself at all, the route has no named parameters.
func selfMatchNames(re *regexp.Regexp, template string) []string {
	names := make([]string, re.NumSubexp())

	m := re.FindStringSubmatch(optionalDelims.Replace(template))
	if m == nil {
		return names
	}

	for i := 1; i < len(m); i++ {
		names[i-1] = paramName(m[i])
	}
	return names
}

// paramName returns the parameter name of a :name or *name token, or ""
// when tok is not a token.
func paramName(tok string) string {
	if len(tok) < 2 || (tok[0] != ':' && tok[0] != '*') {
		return ""
	}
	name := tok[1:]
	for i := 0; i < len(name); i++ {
		if !isWordByte(name[i]) {
			return ""
		}
	}
	return name
}

func isWordByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// checkDuplicateParams returns an error if a parameter name repeats.
func checkDuplicateParams(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if seen[n] {
			return fmt.Errorf("duplicated route parameter %q", n)
		}
		seen[n] = true
	}
	return nil
}

// Template returns the template the matcher was compiled from.
func (m *Matcher) Template() string {
	return m.template
}

// Regexp returns the compiled regular expression.
func (m *Matcher) Regexp() *regexp.Regexp {
	return m.regexp
}

// Names returns the positional parameter names, one per capture group.
// Unnamed groups are reported as "".
func (m *Matcher) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// String returns the regular expression source.
func (m *Matcher) String() string {
	return m.regexp.String()
}

// Match reports whether path matches the template.
func (m *Matcher) Match(path string) bool {
	return m.regexp.MatchString(path)
}

// Params matches path and pairs each named capture group with its value.
// Values are percent-decoded; a value that fails to decode is kept as is.
// Optional groups that did not participate in the match are omitted.
func (m *Matcher) Params(path string) (map[string]string, bool) {
	idx := m.regexp.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}

	params := make(map[string]string, len(m.names))
	for i, name := range m.names {
		if name == "" {
			continue
		}
		start, end := idx[2*i+2], idx[2*i+3]
		if start < 0 {
			continue
		}
		params[name] = decodeParam(path[start:end])
	}
	return params, true
}

func decodeParam(v string) string {
	if d, err := url.PathUnescape(v); err == nil {
		return d
	}
	return v
}
