package content

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// Language is one of the two codes the portfolio is published in.
type Language string

const (
	English Language = "en"
	Khmer   Language = "km"

	DefaultLanguage = English
)

// ErrUnsupportedLanguage is returned for codes other than en and km.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages lists the supported codes in display order.
func Languages() []Language { return []Language{English, Khmer} }

var (
	englishBase, _ = language.English.Base()
	khmerBase, _   = language.Khmer.Base()
)

// ParseLanguage accepts a BCP 47 tag and maps its base language onto a
// supported code, so "EN", "en-US" and "km-KH" all resolve.
func ParseLanguage(code string) (Language, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errors.Wrap(ErrUnsupportedLanguage, "empty language code")
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", errors.Wrapf(ErrUnsupportedLanguage, "%q", code)
	}
	base, _ := tag.Base()
	switch base {
	case englishBase:
		return English, nil
	case khmerBase:
		return Khmer, nil
	}
	return "", errors.Wrapf(ErrUnsupportedLanguage, "%q", code)
}

// Valid reports whether l is a supported code.
func (l Language) Valid() bool { return l == English || l == Khmer }

// Toggle flips between the two supported codes.
func (l Language) Toggle() Language {
	if l == Khmer {
		return English
	}
	return Khmer
}

// Tag returns the BCP 47 tag for the lang attribute.
func (l Language) Tag() language.Tag {
	if l == Khmer {
		return language.Khmer
	}
	return language.English
}

func (l Language) String() string { return string(l) }
