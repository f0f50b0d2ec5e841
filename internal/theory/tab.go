package theory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BarToken is the technique token written on every string of a bar-line column
const BarToken = "|"

// ValueKind distinguishes a fretted number from a technique token
type ValueKind int

const (
	ValuePlayed ValueKind = iota
	ValueTechnique
)

// TabValue is either Played(fret) or Technique(token), never both
type TabValue struct {
	kind  ValueKind
	fret  int
	token string
}

// Played returns a value for a note fretted at fret
func Played(fret int) TabValue {
	return TabValue{kind: ValuePlayed, fret: fret}
}

// Technique returns a value carrying a technique token such as "h", "p", "x" or "|"
func Technique(token string) TabValue {
	return TabValue{kind: ValueTechnique, token: token}
}

// Kind returns which variant the value holds
func (v TabValue) Kind() ValueKind {
	return v.kind
}

// Fret returns the fret for Played values
func (v TabValue) Fret() (int, bool) {
	return v.fret, v.kind == ValuePlayed
}

// Token returns the token for Technique values
func (v TabValue) Token() (string, bool) {
	return v.token, v.kind == ValueTechnique
}

func (v TabValue) String() string {
	if v.kind == ValuePlayed {
		return strconv.Itoa(v.fret)
	}
	return v.token
}

// MarshalJSON writes Played values as numbers and Technique values as strings
func (v TabValue) MarshalJSON() ([]byte, error) {
	if v.kind == ValuePlayed {
		return json.Marshal(v.fret)
	}
	return json.Marshal(v.token)
}

// UnmarshalJSON reads the number-or-string encoding produced by MarshalJSON
func (v *TabValue) UnmarshalJSON(data []byte) error {
	var fret int
	if err := json.Unmarshal(data, &fret); err == nil {
		*v = Played(fret)
		return nil
	}
	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("tab value must be a fret number or a token: %w", err)
	}
	*v = Technique(token)
	return nil
}

// TabEntry places a value on one string
type TabEntry struct {
	String int      `json:"string"`
	Value  TabValue `json:"value"`
}

// ColumnKind tells notes, bar lines and rests apart
type ColumnKind string

const (
	ColumnNotes ColumnKind = "notes"
	ColumnBar   ColumnKind = "bar"
	ColumnRest  ColumnKind = "rest"
)

// Column is one time step of the tab. Entries in a notes column sound together.
type Column struct {
	Kind    ColumnKind `json:"kind"`
	Entries []TabEntry `json:"entries"`
}

// IsBar reports whether the column is a bar line
func (c Column) IsBar() bool {
	return c.Kind == ColumnBar
}

// Entry returns the value on the given string, if any
func (c Column) Entry(stringIndex int) (TabValue, bool) {
	for _, e := range c.Entries {
		if e.String == stringIndex {
			return e.Value, true
		}
	}
	return TabValue{}, false
}

// Tab is an append-only sequence of columns over a fixed number of strings
type Tab struct {
	stringCount int
	columns     []Column
}

// NewTab creates an empty tab for an instrument with stringCount strings
func NewTab(stringCount int) *Tab {
	return &Tab{stringCount: stringCount, columns: []Column{}}
}

// StringCount returns the number of strings the tab is written for
func (t *Tab) StringCount() int {
	return t.stringCount
}

// Len returns the number of columns
func (t *Tab) Len() int {
	return len(t.columns)
}

// Columns returns a copy of the column sequence
func (t *Tab) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Clone returns a deep copy that shares no columns or entries with t
func (t *Tab) Clone() *Tab {
	out := &Tab{stringCount: t.stringCount, columns: make([]Column, len(t.columns))}
	for i, col := range t.columns {
		out.columns[i] = Column{Kind: col.Kind, Entries: make([]TabEntry, len(col.Entries))}
		copy(out.columns[i].Entries, col.Entries)
	}
	return out
}

// Last returns the final column
func (t *Tab) Last() (Column, bool) {
	if len(t.columns) == 0 {
		return Column{}, false
	}
	return t.columns[len(t.columns)-1], true
}

// AddNotes appends a column of simultaneous entries
func (t *Tab) AddNotes(entries ...TabEntry) {
	col := Column{Kind: ColumnNotes, Entries: make([]TabEntry, len(entries))}
	copy(col.Entries, entries)
	t.columns = append(t.columns, col)
}

// AddNote appends a single fretted note
func (t *Tab) AddNote(stringIndex, fret int) {
	t.AddNotes(TabEntry{String: stringIndex, Value: Played(fret)})
}

// AddBar appends a bar line spanning every string
func (t *Tab) AddBar() {
	col := Column{Kind: ColumnBar, Entries: make([]TabEntry, t.stringCount)}
	for s := 0; s < t.stringCount; s++ {
		col.Entries[s] = TabEntry{String: s, Value: Technique(BarToken)}
	}
	t.columns = append(t.columns, col)
}

// AddRest appends an empty column
func (t *Tab) AddRest() {
	t.columns = append(t.columns, Column{Kind: ColumnRest, Entries: []TabEntry{}})
}

// EnsureTrailingBar appends a bar unless the tab already ends with one
func (t *Tab) EnsureTrailingBar() {
	if last, ok := t.Last(); ok && last.IsBar() {
		return
	}
	t.AddBar()
}

type tabJSON struct {
	StringCount int      `json:"stringCount"`
	Columns     []Column `json:"columns"`
}

func (t *Tab) MarshalJSON() ([]byte, error) {
	return json.Marshal(tabJSON{StringCount: t.stringCount, Columns: t.columns})
}

func (t *Tab) UnmarshalJSON(data []byte) error {
	var raw tabJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.stringCount = raw.StringCount
	t.columns = raw.Columns
	if t.columns == nil {
		t.columns = []Column{}
	}
	return nil
}

// Render draws the tab as plain text, one line per string, string 0 on top.
// stringNames label each line; missing names fall back to the string number.
func (t *Tab) Render(stringNames []string) string {
	labels := make([]string, t.stringCount)
	labelWidth := 0
	for s := range labels {
		if s < len(stringNames) {
			labels[s] = stringNames[s]
		} else {
			labels[s] = strconv.Itoa(s + 1)
		}
		if len(labels[s]) > labelWidth {
			labelWidth = len(labels[s])
		}
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = 1
		for _, e := range col.Entries {
			if w := len(e.Value.String()); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for s := 0; s < t.stringCount; s++ {
		b.WriteString(labels[s])
		b.WriteString(strings.Repeat(" ", labelWidth-len(labels[s])))
		b.WriteString("|")
		for i, col := range t.columns {
			if col.IsBar() {
				b.WriteString("-|")
				continue
			}
			cell := "-"
			if v, ok := col.Entry(s); ok {
				cell = v.String()
			}
			b.WriteString("-")
			b.WriteString(cell)
			b.WriteString(strings.Repeat("-", widths[i]-len(cell)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
