// Package retrieval supplies bundled admission reference notes for target
// universities. Lookups are local and never fail.
package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Retriever returns reference text for an ordered list of target names.
type Retriever interface {
	Retrieve(names []string) string
}

const (
	// EmptyNotice is returned when no target names are given.
	EmptyNotice = "지망 대학 정보가 제공되지 않았습니다. 일반적인 수리논술 출제 경향(수학 I·II 중심, 미적분 응용, 논증 서술)을 기준으로 분석하십시오."
	unknownNote = "등록된 참고 자료가 없습니다. 일반적인 수리논술 출제 경향을 기준으로 분석하십시오."
)

// Note is one bundled reference entry.
type Note struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Text    string   `json:"text"`
}

// Table is an in-memory Retriever over a fixed set of notes.
type Table struct {
	byName map[string]Note
	keys   []lookupKey
}

type lookupKey struct {
	key  string
	name string
}

// Default returns a Table over the bundled notes.
func Default() *Table { return New(bundled) }

// New indexes notes by canonical name and alias.
func New(notes []Note) *Table {
	t := &Table{byName: make(map[string]Note, len(notes))}
	for _, n := range notes {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			continue
		}
		t.byName[name] = n
		t.keys = append(t.keys, lookupKey{key: normalize(name), name: name})
		for _, a := range n.Aliases {
			if a = normalize(a); a != "" {
				t.keys = append(t.keys, lookupKey{key: a, name: name})
			}
		}
	}
	// Longest key first so "한양대에리카" wins over "한양대".
	sort.SliceStable(t.keys, func(i, j int) bool {
		return len(t.keys[i].key) > len(t.keys[j].key)
	})
	return t
}

// minPrefixRunes keeps short nicknames like "성대" from matching inside
// unrelated names such as "한성대".
const minPrefixRunes = 3

// Lookup resolves a free-text name to a note. Exact key matches win; after
// that the longest key of at least minPrefixRunes that starts the input is
// used, so campus suffixes ("연세대학교 미래캠퍼스") still resolve.
func (t *Table) Lookup(name string) (Note, bool) {
	if t == nil {
		return Note{}, false
	}
	q := normalize(name)
	if q == "" {
		return Note{}, false
	}
	for _, k := range t.keys {
		if k.key == q {
			return t.byName[k.name], true
		}
	}
	for _, k := range t.keys {
		if utf8.RuneCountInString(k.key) >= minPrefixRunes && strings.HasPrefix(q, k.key) {
			return t.byName[k.name], true
		}
	}
	return Note{}, false
}

// Retrieve concatenates one block per distinct input name, in input order.
// Unrecognized names get a neutral placeholder; an empty list yields
// EmptyNotice.
func (t *Table) Retrieve(names []string) string {
	var b strings.Builder
	seen := map[string]bool{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		note, ok := t.Lookup(name)
		key := name
		if ok {
			key = note.Name
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if ok {
			b.WriteString("[" + note.Name + "] " + note.Text)
		} else {
			b.WriteString("[" + name + "] " + unknownNote)
		}
	}
	if b.Len() == 0 {
		return EmptyNotice
	}
	return b.String()
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", "(", "", ")", "", "학교", "").Replace(s)
	return s
}
