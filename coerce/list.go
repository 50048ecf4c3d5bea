package coerce

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/origin1tech/pargv/pkg"
)

// ParseList compiles an enumeration such as "red,green|blue" into an
// anchored expression matching exactly one of its items.
// A value written as /pattern/flags is compiled as a regular expression.
func ParseList(enum string) (*regexp.Regexp, error) {
	enum = strings.TrimSpace(enum)

	if reRegexp.MatchString(enum) {
		re, _ := castRegexp(enum, false)
		if re == nil {
			return nil, pkg.ErrGrammar.Wrapf("invalid list expression %q", enum)
		}

		return re.(*regexp.Regexp), nil
	}

	items := strings.FieldsFunc(enum, func(r rune) bool {
		return r == ',' || r == '|' || r == ' ' || r == '\t'
	})
	if len(items) == 0 {
		return nil, pkg.ErrUndefinedValue.Wrapf("empty list").
			With(slog.String("list", enum))
	}

	for i, item := range items {
		items[i] = regexp.QuoteMeta(item)
	}

	return regexp.MustCompile("^(" + strings.Join(items, "|") + ")$"), nil
}
