// Package lang holds the language table used to classify cursor contexts:
// extension lookup, single-line comment syntax, and empty-function patterns.
package lang

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	defaults "github.com/Paranoid-AF/cursorlet/default"
)

// Unknown is returned for files whose extension is not in the table.
// It has no comment syntax, no function patterns, and no examples.
var Unknown = &Language{}

// Catalog is an immutable, ordered language table. It is safe for concurrent use.
type Catalog struct {
	languages []*Language
	byName    map[string]*Language
}

type tableFile struct {
	DefaultCommentPattern string          `toml:"default_comment_pattern"`
	Languages             []languageEntry `toml:"language"`
	Comments              []commentEntry  `toml:"comment"`
	Functions             []functionEntry `toml:"function"`
}

type languageEntry struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
}

type commentEntry struct {
	Prefix    string   `toml:"prefix"`
	Pattern   string   `toml:"pattern"`
	Languages []string `toml:"languages"`
}

type functionEntry struct {
	Languages []string `toml:"languages"`
	Empty     string   `toml:"empty"`
	Boundary  string   `toml:"boundary"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(defaults.LanguagesTOML, defaults.ExamplesYAML)
	if err != nil {
		panic("cursorlet: invalid embedded language table: " + err.Error())
	}
	return c
})

// Default returns the catalog built from the embedded language table.
func Default() *Catalog {
	return defaultCatalog()
}

// Detect resolves a file name against the default catalog.
func Detect(filename string) *Language {
	return Default().Detect(filename)
}

// Load builds a catalog from a TOML language table and a YAML example bank.
// examplesYAML may be nil.
func Load(tableTOML, examplesYAML []byte) (*Catalog, error) {
	var table tableFile
	if _, err := toml.Decode(string(tableTOML), &table); err != nil {
		return nil, fmt.Errorf("decode language table: %w", err)
	}

	c := &Catalog{
		languages: make([]*Language, 0, len(table.Languages)),
		byName:    make(map[string]*Language, len(table.Languages)),
	}
	for _, entry := range table.Languages {
		if entry.Name == "" {
			return nil, fmt.Errorf("language entry with empty name")
		}
		if _, dup := c.byName[entry.Name]; dup {
			return nil, fmt.Errorf("duplicate language %q", entry.Name)
		}
		l := &Language{
			name:       entry.Name,
			extensions: append([]string(nil), entry.Extensions...),
		}
		c.languages = append(c.languages, l)
		c.byName[entry.Name] = l
	}

	for _, entry := range table.Comments {
		comment, err := newComment(entry.Prefix, entry.Pattern)
		if err != nil {
			return nil, fmt.Errorf("comment family %v: %w", entry.Languages, err)
		}
		for _, name := range entry.Languages {
			l, ok := c.byName[name]
			if !ok {
				return nil, fmt.Errorf("comment family references unknown language %q", name)
			}
			l.comment = comment
		}
	}

	if table.DefaultCommentPattern != "" {
		fallback, err := newComment("", table.DefaultCommentPattern)
		if err != nil {
			return nil, fmt.Errorf("default comment pattern: %w", err)
		}
		for _, l := range c.languages {
			if l.comment == nil {
				l.comment = fallback
			}
		}
	}

	for _, entry := range table.Functions {
		empty, err := regexp.Compile(entry.Empty)
		if err != nil {
			return nil, fmt.Errorf("empty function pattern for %v: %w", entry.Languages, err)
		}
		boundary, err := regexp.Compile(entry.Boundary)
		if err != nil {
			return nil, fmt.Errorf("function boundary pattern for %v: %w", entry.Languages, err)
		}
		for _, name := range entry.Languages {
			l, ok := c.byName[name]
			if !ok {
				return nil, fmt.Errorf("function patterns reference unknown language %q", name)
			}
			l.emptyFunction = empty
			l.functionBoundary = boundary
		}
	}

	for _, l := range c.languages {
		l.instruction = instructionPattern(l.comment)
	}

	if len(examplesYAML) > 0 {
		if err := c.loadExamples(examplesYAML); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Detect returns the first language whose extension set contains the text
// after the last '.' of filename. Extensions are compared case-sensitively.
// Unmatched names resolve to Unknown.
func (c *Catalog) Detect(filename string) *Language {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return Unknown
	}
	ext := filename[i+1:]
	if ext == "" {
		return Unknown
	}
	for _, l := range c.languages {
		for _, e := range l.extensions {
			if e == ext {
				return l
			}
		}
	}
	return Unknown
}

// Lookup returns the language with the given name.
func (c *Catalog) Lookup(name string) (*Language, bool) {
	l, ok := c.byName[name]
	return l, ok
}

// Languages returns the table in priority order.
func (c *Catalog) Languages() []*Language {
	return append([]*Language(nil), c.languages...)
}
