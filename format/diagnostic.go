package format

import (
	"fmt"
	"strings"

	"github.com/dhamidi/parc/parse"
)

// RenderFailure describes a failed parse: where the parse got stuck and
// which parsers could have matched there. m may be nil, in which case plain
// offsets are printed.
func RenderFailure(res *parse.Result, m *LineMap) string {
	if res.Matched {
		return "no failure"
	}
	if res.FurthestPos < 0 {
		return "no input consumed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "parse failed at %s", Describe(m, res.FurthestPos))
	if names := res.CauseNames(); len(names) > 0 {
		fmt.Fprintf(&b, ": expected %s", strings.Join(names, " or "))
	}
	return b.String()
}

// Lister is the dump surface memoizers expose.
type Lister interface {
	Listing(describe func(int) string) string
}

// RenderMemo dumps a memoizer's entries, translating positions through m.
func RenderMemo(l Lister, m *LineMap) string {
	return l.Listing(func(pos int) string { return Describe(m, pos) })
}
