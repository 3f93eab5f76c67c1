// Package substitute performs placeholder substitution over page shells and
// emitted assets.
//
// A Table maps literal tokens to replacement text. Applying a table is a
// single left-to-right scan: every token occurrence in the input is replaced
// and replacement text is never scanned again. When two patterns match at the
// same position the one added first wins, so tokens must be fully delimited
// (no pattern is a prefix of another) for the result not to depend on table
// order. Authors must keep replacement text free of other patterns of the
// same table; CheckOverlaps enforces this when strict placeholders are
// enabled.
package substitute

import (
	"bytes"
	"encoding/json"
	"strings"

	"git.home.luguber.info/inful/pagegen/internal/foundation/errors"
)

// Pair is one (pattern, replacement) entry.
type Pair struct {
	Pattern     string
	Replacement string
}

// Table is an ordered set of pairs with unique patterns.
type Table struct {
	pairs []Pair
	index map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends a pair. An empty or repeated pattern is a configuration error.
func (t *Table) Add(pattern, replacement string) error {
	if pattern == "" {
		return errors.ConfigError("empty placeholder pattern").Build()
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, exists := t.index[pattern]; exists {
		return errors.ConfigError("duplicate placeholder").WithContext("pattern", pattern).Build()
	}
	t.index[pattern] = len(t.pairs)
	t.pairs = append(t.pairs, Pair{Pattern: pattern, Replacement: replacement})
	return nil
}

// Merge adds every pair of other, failing on the first duplicate.
func (t *Table) Merge(other *Table) error {
	if other == nil {
		return nil
	}
	for _, p := range other.pairs {
		if err := t.Add(p.Pattern, p.Replacement); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := NewTable()
	for _, p := range t.pairs {
		c.index[p.Pattern] = len(c.pairs)
		c.pairs = append(c.pairs, p)
	}
	return c
}

// Lookup returns the replacement registered for pattern.
func (t *Table) Lookup(pattern string) (string, bool) {
	i, ok := t.index[pattern]
	if !ok {
		return "", false
	}
	return t.pairs[i].Replacement, true
}

// Pairs returns the entries in insertion order.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.pairs) }

// Apply replaces every token occurrence in s in one scan.
func (t *Table) Apply(s string) string {
	if len(t.pairs) == 0 {
		return s
	}
	return t.replacer().Replace(s)
}

// ApplyBytes is Apply for byte content.
func (t *Table) ApplyBytes(b []byte) []byte {
	if len(t.pairs) == 0 {
		return b
	}
	return []byte(t.replacer().Replace(string(b)))
}

func (t *Table) replacer() *strings.Replacer {
	oldnew := make([]string, 0, 2*len(t.pairs))
	for _, p := range t.pairs {
		oldnew = append(oldnew, p.Pattern, p.Replacement)
	}
	return strings.NewReplacer(oldnew...)
}

// JSONEscaped returns a copy whose patterns and replacements are escaped as
// JSON string content, for rewriting inside an encoded JSON document. "</" is
// escaped as well so text stays safe inside a script element.
func (t *Table) JSONEscaped() (*Table, error) {
	c := NewTable()
	for _, p := range t.pairs {
		pattern, err := jsonStringContent(p.Pattern)
		if err != nil {
			return nil, err
		}
		replacement, err := jsonStringContent(p.Replacement)
		if err != nil {
			return nil, err
		}
		if err := c.Add(pattern, replacement); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func jsonStringContent(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "escape placeholder").Build()
	}
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(quoted[1:len(quoted)-1], "</", `<\/`), nil
}

// CheckOverlaps rejects tables in which a replacement contains some pattern
// of the same table. Such tables would give different results under repeated
// or differently ordered substitution.
func (t *Table) CheckOverlaps() error {
	for _, p := range t.pairs {
		for _, q := range t.pairs {
			if strings.Contains(p.Replacement, q.Pattern) {
				return errors.ConfigError("placeholder replacement contains another placeholder").
					WithContext("pattern", p.Pattern).
					WithContext("contains", q.Pattern).
					Build()
			}
		}
	}
	return nil
}
