// Package resources loads the localized strings, coded error messages,
// and CLI argument definitions that bvz tools keep in per-language ini
// resource files.
package resources

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/language"

	"github.com/bvz2000/bvzgo/pkg/config"
	"github.com/bvz2000/bvzgo/pkg/errmsg"
	"github.com/bvz2000/bvzgo/pkg/generic"
)

// Reserved section names in a resources file.
const (
	SectionMessages    = "messages"
	SectionErrorCodes  = "error_codes"
	SectionDescription = "description"
	SectionUsage       = "usage"
)

// 📦 Resources wraps a parsed resource file. Resource files are ini files
// named <prefix>_resources_<lang>.ini, where <lang> is a BCP-47 tag, and
// hold localized strings, coded error messages, and CLI argument
// definitions.
type Resources struct {
	*config.Config

	dir    string
	prefix string
	lang   string
}

// Item is a single key/value pair from a resource section, in file order.
type Item struct {
	Key   string
	Value string
}

// New loads the resource file for an exact language tag. The file must
// exist; use Match to fall back across available translations.
func New(ctx context.Context, dir, prefix, lang string) (*Resources, error) {
	path := filepath.Join(dir, prefix+"_resources_"+lang+".ini")

	cfg, err := config.Load(ctx, path, "")
	if err != nil {
		return nil, errors.Errorf("loading resource file: %w", err)
	}

	return &Resources{Config: cfg, dir: dir, prefix: prefix, lang: lang}, nil
}

// Match loads the best available translation of a resource file for the
// requested language tag. Available translations are discovered by listing
// <prefix>_resources_*.ini files in dir and the winner is picked with the
// x/text language matcher. English is the fallback when nothing matches.
func Match(ctx context.Context, dir, prefix, lang string) (*Resources, error) {
	desired, err := language.Parse(lang)
	if err != nil {
		return nil, errors.Errorf("parsing language tag %q: %w", lang, err)
	}

	tags, byTag, err := available(dir, prefix)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, errors.Errorf("%w: no %s_resources_*.ini files in %s",
			config.ErrNotFound, prefix, dir)
	}

	matcher := language.NewMatcher(tags)
	_, idx, conf := matcher.Match(desired)
	chosen := byTag[tags[idx].String()]

	zerolog.Ctx(ctx).Debug().
		Str("requested", lang).
		Str("chosen", chosen).
		Str("confidence", conf.String()).
		Msg("matched resource language")

	return New(ctx, dir, prefix, chosen)
}

// available lists the language tags that have a resource file on disk. The
// first tag in the returned slice is the matcher fallback, so English is
// moved to the front when present.
func available(dir, prefix string) ([]language.Tag, map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Errorf("listing resource dir %s: %w", dir, err)
	}

	head := prefix + "_resources_"

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, head) || !strings.HasSuffix(name, ".ini") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, head), ".ini"))
	}
	sort.Strings(langs)

	var tags []language.Tag
	byTag := make(map[string]string)
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			// Not a language-tagged file, skip it.
			continue
		}
		byTag[tag.String()] = l
		if tag == language.English {
			tags = append([]language.Tag{tag}, tags...)
		} else {
			tags = append(tags, tag)
		}
	}

	return tags, byTag, nil
}

// Language returns the language tag of the loaded file.
func (r *Resources) Language() string {
	return r.lang
}

// Prefix returns the resource file prefix.
func (r *Resources) Prefix() string {
	return r.prefix
}

// Items returns the key/value pairs of a section in file order, with color
// tags in the values expanded.
func (r *Resources) Items(section string) ([]Item, error) {
	keys, err := r.Keys(section)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(keys))
	for _, key := range keys {
		value, err := r.GetString(section, key)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Key: key, Value: FormatString(value)})
	}
	return items, nil
}

// Message returns the formatted string stored under key in [messages].
func (r *Resources) Message(key string) (string, error) {
	msg, err := r.GetString(SectionMessages, key)
	if err != nil {
		return "", err
	}
	return FormatString(msg), nil
}

// ErrorCode returns the coded error stored under code in [error_codes].
func (r *Resources) ErrorCode(code int) (*errmsg.Error, error) {
	msg, err := r.GetString(SectionErrorCodes, strconv.Itoa(code))
	if err != nil {
		return nil, err
	}
	return errmsg.New(code, FormatString(msg)), nil
}

// Description joins the [description] section into a multi-line string.
// Returns an empty string when the section is absent.
func (r *Resources) Description() string {
	return r.multiLine(SectionDescription)
}

// Usage joins the [usage] section into a multi-line string. Returns an
// empty string when the section is absent.
func (r *Resources) Usage() string {
	return r.multiLine(SectionUsage)
}

func (r *Resources) multiLine(section string) string {
	items, err := r.Items(section)
	if err != nil {
		return ""
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Key)
	}
	return generic.MultiLine(lines)
}
