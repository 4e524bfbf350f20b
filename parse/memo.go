package parse

import (
	"fmt"
	"hash/fnv"
	"reflect"
	"sort"
	"strings"
)

// Memoizer caches sub-parse outcomes keyed by start position, context and
// (depending on the implementation) the parser. One instance serves one
// parse; sharing an instance across concurrent parses requires external
// synchronization.
type Memoizer interface {
	// Memoize stores an entry, possibly evicting an older one.
	Memoize(e *MemoEntry)

	// Get returns the entry matching (p, pos, ctx), or nil.
	Get(p Parser, pos int, ctx any) *MemoEntry
}

// MemoEntry records one parser invocation: a match over [StartPos, EndPos)
// with the side effects it produced, or a failure (EndPos == -1, empty
// delta).
type MemoEntry struct {
	Parser   Parser
	StartPos int
	EndPos   int
	Delta    []SideEffect
	Ctx      any
}

// NewMemoEntry builds an entry. When success is false the end position is
// forced to -1 and the delta is discarded.
func NewMemoEntry(success bool, p Parser, startPos, endPos int, delta []SideEffect, ctx any) *MemoEntry {
	if !success {
		endPos = -1
		delta = nil
	}
	return &MemoEntry{Parser: p, StartPos: startPos, EndPos: endPos, Delta: delta, Ctx: ctx}
}

// Succeeded reports whether the entry records a match. A zero-length match
// at position 0 is a success; only EndPos == -1 denotes failure.
func (e *MemoEntry) Succeeded() bool { return e.EndPos != -1 }

// Matches reports whether the entry answers a query for (p, pos, ctx),
// comparing the parser only when matchParser is set.
func (e *MemoEntry) Matches(matchParser bool, p Parser, pos int, ctx any) bool {
	return e.StartPos == pos &&
		(!matchParser || e.Parser == p) &&
		e.Ctx == ctx
}

// ListingString renders the entry for a memoizer dump. describe translates
// a position for display; parserName controls whether the producing parser
// is shown.
func (e *MemoEntry) ListingString(describe func(int) string, parserName bool) string {
	if !e.Succeeded() {
		return "at " + describe(e.StartPos) + ": no match"
	}
	var b strings.Builder
	b.WriteString("from ")
	b.WriteString(describe(e.StartPos))
	b.WriteString(" to ")
	b.WriteString(describe(e.EndPos))
	if parserName {
		b.WriteString(": ")
		b.WriteString(Name(e.Parser))
	}
	return b.String()
}

func (e *MemoEntry) String() string {
	describe := func(pos int) string { return fmt.Sprintf("%d", pos) }
	if !e.Succeeded() {
		return fmt.Sprintf("MemoEntry { %s, no match }", Name(e.Parser))
	}
	return fmt.Sprintf("MemoEntry { %s, range = [%s - %s] }",
		Name(e.Parser), describe(e.StartPos), describe(e.EndPos))
}

// MemoCache is a fixed-size memoizer that keeps the last n entries it was
// handed, evicting the oldest. With matchParser set, queries compare the
// parser as well as the position and context; otherwise any entry at the
// position (whatever parser produced it) answers, which suits caches
// dedicated to a single parser.
type MemoCache struct {
	hashes      []uint64
	entries     []*MemoEntry
	next        int
	matchParser bool
}

// NewMemoCache builds a cache with the given number of slots.
func NewMemoCache(slots int, matchParser bool) *MemoCache {
	return &MemoCache{
		hashes:      make([]uint64, slots),
		entries:     make([]*MemoEntry, slots),
		matchParser: matchParser,
	}
}

// Memoize fills the next slot: unoccupied, or the oldest added.
func (c *MemoCache) Memoize(e *MemoEntry) {
	c.hashes[c.next] = entryHash(c.matchParser, e.Parser, e.StartPos, e.Ctx)
	c.entries[c.next] = e
	if c.next++; c.next == len(c.entries) {
		c.next = 0
	}
}

// Get scans the slots from most to least recently added. A zero hash marks
// a slot that was never filled and terminates the scan.
func (c *MemoCache) Get(p Parser, pos int, ctx any) *MemoEntry {
	hash := entryHash(c.matchParser, p, pos, ctx)
	for i := 0; i < len(c.entries); i++ {
		j := c.next - 1 - i
		if j < 0 {
			j += len(c.entries)
		}
		if c.hashes[j] == 0 {
			return nil
		}
		if c.hashes[j] == hash && c.entries[j].Matches(c.matchParser, p, pos, ctx) {
			return c.entries[j]
		}
	}
	return nil
}

// Listing renders the occupied slots ordered by start position.
func (c *MemoCache) Listing(describe func(int) string) string {
	var live []*MemoEntry
	for _, e := range c.entries {
		if e != nil {
			live = append(live, e)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].StartPos < live[j].StartPos })
	parts := make([]string, len(live))
	for i, e := range live {
		parts[i] = e.ListingString(describe, c.matchParser)
	}
	return strings.Join(parts, "\n")
}

// entryHash folds position, context and (when matchParser) parser identity
// into a nonzero hash. Zero is reserved as the empty-slot sentinel, so a
// legitimate zero hash is bumped to one.
func entryHash(matchParser bool, p Parser, pos int, ctx any) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putUint64(buf[:], uint64(pos))
	h.Write(buf[:])
	if matchParser && p != nil {
		if v := reflect.ValueOf(p); v.Kind() == reflect.Pointer {
			putUint64(buf[:], uint64(v.Pointer()))
			h.Write(buf[:])
		} else {
			fmt.Fprintf(h, "%T", p)
		}
	}
	if ctx != nil {
		fmt.Fprintf(h, "%T%v", ctx, ctx)
	}
	sum := h.Sum64()
	if sum == 0 {
		sum = 1
	}
	return sum
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// MemoTable is an unbounded memoizer backed by a map. It always compares
// the parser, so one table can serve a whole grammar.
type MemoTable struct {
	entries map[tableKey][]*MemoEntry
}

type tableKey struct {
	pos int
	ctx any
}

// NewMemoTable builds an empty table.
func NewMemoTable() *MemoTable {
	return &MemoTable{entries: make(map[tableKey][]*MemoEntry)}
}

func (t *MemoTable) Memoize(e *MemoEntry) {
	k := tableKey{pos: e.StartPos, ctx: e.Ctx}
	t.entries[k] = append(t.entries[k], e)
}

func (t *MemoTable) Get(p Parser, pos int, ctx any) *MemoEntry {
	for _, e := range t.entries[tableKey{pos: pos, ctx: ctx}] {
		if e.Parser == p {
			return e
		}
	}
	return nil
}

// Listing renders every entry ordered by start position.
func (t *MemoTable) Listing(describe func(int) string) string {
	var live []*MemoEntry
	for _, es := range t.entries {
		live = append(live, es...)
	}
	sort.Slice(live, func(i, j int) bool { return live[i].StartPos < live[j].StartPos })
	parts := make([]string, len(live))
	for i, e := range live {
		parts[i] = e.ListingString(describe, true)
	}
	return strings.Join(parts, "\n")
}
