package dictionary

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/amistad-translator/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

const (
	wordsFile     = "data/words.yaml"
	sentencesFile = "data/sentences.yaml"
)

// Source is the on-disk shape of a dictionary file:
// source language -> target language -> entry -> translation.
type Source map[string]map[string]map[string]string

// Table maps a normalized key onto its translation. An empty translation
// means the token has no equivalent in the target language.
type Table map[string]string

// Registry holds the word and exact-sentence tables of every language pair.
// It is immutable once built and safe for concurrent use.
type Registry struct {
	words     map[domain.Pair]Table
	sentences map[domain.Pair]Table
	// word keys per pair, longest first, for greedy segmentation.
	keys map[domain.Pair][]string
}

// LoadDefault builds the registry from the embedded dictionaries.
func LoadDefault() (*Registry, error) {
	return Load(dataFS, wordsFile, sentencesFile)
}

// MustLoadDefault is LoadDefault for package-level initialization and tests.
func MustLoadDefault() *Registry {
	r, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return r
}

// Load reads a words file and a sentences file from fsys.
func Load(fsys fs.FS, wordsPath, sentencesPath string) (*Registry, error) {
	words, err := readSource(fsys, wordsPath)
	if err != nil {
		return nil, err
	}
	sentences, err := readSource(fsys, sentencesPath)
	if err != nil {
		return nil, err
	}
	return New(words, sentences)
}

func readSource(fsys fs.FS, path string) (Source, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("dictionary: parse %s: %w", path, err)
	}
	return src, nil
}

// New builds a registry. Every key goes through domain.NormalizeKey;
// translations are kept verbatim. Language codes must be supported ones.
func New(words, sentences Source) (*Registry, error) {
	r := &Registry{
		words:     make(map[domain.Pair]Table),
		sentences: make(map[domain.Pair]Table),
		keys:      make(map[domain.Pair][]string),
	}
	errs := fill(r.words, words, "words")
	errs = append(errs, fill(r.sentences, sentences, "sentences")...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("dictionary: %w", domain.NewValidationErrors(errs))
	}

	for pair, table := range r.words {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sortLongestFirst(keys)
		r.keys[pair] = keys
	}
	return r, nil
}

// fill copies src into dst and reports every invalid pair or key.
func fill(dst map[domain.Pair]Table, src Source, section string) []domain.FieldError {
	var errs []domain.FieldError
	for from, targets := range src {
		for to, entries := range targets {
			pair := domain.Pair{From: domain.Language(from), To: domain.Language(to)}
			if !pair.From.IsValid() || !pair.To.IsValid() {
				errs = append(errs, domain.FieldError{
					Field:   section + "." + from + "." + to,
					Message: "unsupported pair " + pair.String(),
				})
				continue
			}
			if len(entries) == 0 {
				continue
			}

			table := dst[pair]
			if table == nil {
				table = make(Table, len(entries))
				dst[pair] = table
			}
			// sorted so that keys colliding after normalization resolve the
			// same way on every load
			raw := make([]string, 0, len(entries))
			for k := range entries {
				raw = append(raw, k)
			}
			sort.Strings(raw)
			for _, k := range raw {
				key := domain.NormalizeKey(k)
				if key == "" {
					errs = append(errs, domain.FieldError{
						Field:   section + "." + from + "." + to,
						Message: fmt.Sprintf("key %q is empty after normalization", k),
					})
					continue
				}
				table[key] = entries[k]
			}
		}
	}
	return errs
}

func sortLongestFirst(keys []string) {
	slices.SortFunc(keys, func(a, b string) int {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return lb - la
		}
		return strings.Compare(a, b)
	})
}

// Word looks text up in the word table of pair.
func (r *Registry) Word(pair domain.Pair, text string) (string, bool) {
	return lookup(r.words[pair], text)
}

// Sentence looks text up in the exact-sentence table of pair.
func (r *Registry) Sentence(pair domain.Pair, text string) (string, bool) {
	return lookup(r.sentences[pair], text)
}

func lookup(table Table, text string) (string, bool) {
	if len(table) == 0 {
		return "", false
	}
	key := domain.NormalizeKey(text)
	if key == "" {
		return "", false
	}
	v, ok := table[key]
	return v, ok
}

// HasPair reports whether any table, word or sentence, exists for pair.
func (r *Registry) HasPair(pair domain.Pair) bool {
	return len(r.words[pair]) > 0 || len(r.sentences[pair]) > 0
}

// Keys returns the word keys of pair sorted longest first. The slice is
// shared and must not be modified.
func (r *Registry) Keys(pair domain.Pair) []string {
	return r.keys[pair]
}

// Pairs lists every pair with at least one table, in a stable order.
func (r *Registry) Pairs() []domain.Pair {
	seen := make(map[domain.Pair]struct{})
	for p := range r.words {
		seen[p] = struct{}{}
	}
	for p := range r.sentences {
		seen[p] = struct{}{}
	}
	pairs := make([]domain.Pair, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b domain.Pair) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return pairs
}
