package content

import (
	"encoding/json"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a content document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrLanguageMissing is returned when the document has no profile for a language.
var ErrLanguageMissing = errors.New("language missing from content document")

// FormatFor picks the decoder from a file name or URL path.
func FormatFor(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a whole document from r.
func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse content YAML")
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "failed to parse content JSON")
		}
	}
	if doc == nil {
		return nil, errors.New("content document is empty")
	}
	return doc, nil
}

// Profile selects the profile for lang.
func (d Document) Profile(lang Language) (*Profile, error) {
	p, ok := d[lang]
	if !ok || p == nil {
		return nil, errors.Wrapf(ErrLanguageMissing, "%s", lang)
	}
	return p, nil
}

// Validate checks that every supported language is present, that ids are
// unique within each list, and that the id sets agree across languages so
// detail links keep working after a language switch.
func (d Document) Validate() error {
	for _, lang := range Languages() {
		p, err := d.Profile(lang)
		if err != nil {
			return err
		}
		if p.Name == "" {
			return errors.Errorf("%s: name is required", lang)
		}
		for list, ids := range p.idSets() {
			if dup, ok := firstDuplicate(ids); ok {
				return errors.Errorf("%s: duplicate %s id %d", lang, list, dup)
			}
		}
	}

	base := d[DefaultLanguage].idSets()
	for _, lang := range Languages() {
		if lang == DefaultLanguage {
			continue
		}
		other := d[lang].idSets()
		for _, list := range []string{"project", "leadership", "certificate"} {
			if !sameSet(base[list], other[list]) {
				return errors.Errorf("%s ids differ between %s %v and %s %v",
					list, DefaultLanguage, sorted(base[list]), lang, sorted(other[list]))
			}
		}
	}
	return nil
}

func (p *Profile) idSets() map[string][]int {
	sets := map[string][]int{
		"project":     make([]int, 0, len(p.Projects)),
		"leadership":  make([]int, 0, len(p.Leadership)),
		"certificate": make([]int, 0, len(p.Certificates)),
	}
	for _, v := range p.Projects {
		sets["project"] = append(sets["project"], v.ID)
	}
	for _, v := range p.Leadership {
		sets["leadership"] = append(sets["leadership"], v.ID)
	}
	for _, v := range p.Certificates {
		sets["certificate"] = append(sets["certificate"], v.ID)
	}
	return sets
}

func firstDuplicate(ids []int) (int, bool) {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return 0, false
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
	}
	return true
}

func sorted(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}
