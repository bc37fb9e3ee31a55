package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds message translations per language. The default language must
// carry every key; other languages are validated against it when added.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the process-wide bundle built from the embedded locales
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundle()
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle returns a bundle loaded from the embedded locales
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

// NewEmptyBundle returns a bundle without translations, English being the default language
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <lang>.json file under dir. The default language is loaded first.
func NewBundleWithFS(fs embed.FS, dir string) (*Bundle, error) {
	b := NewEmptyBundle()
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var deferred []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		if lang != b.defaultLang {
			deferred = append(deferred, entry.Name())
			continue
		}
		if err := b.loadFile(fs, lang, path.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	if !b.HasLanguage(b.defaultLang) {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	for _, name := range deferred {
		lang := language.MustParse(strings.TrimSuffix(name, ".json"))
		if err := b.loadFile(fs, lang, path.Join(dir, name)); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T returns the translation for key in the default language, formatted with args
func (b *Bundle) T(key string, args ...interface{}) string {
	return b.TL(b.DefaultLanguage(), key, args...)
}

// TL returns the translation for key in lang, falling back to the default language and finally to the key itself
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.translations[lang][key]; ok {
		return b.printers[lang].Sprintf(key, args...)
	}
	if _, ok := b.translations[b.defaultLang][key]; ok {
		return b.printers[b.defaultLang].Sprintf(key, args...)
	}
	if len(args) > 0 {
		return fmt.Sprintf("%s %v", key, args)
	}

	return key
}

// Message returns the raw (unformatted) message for key in lang
func (b *Bundle) Message(lang language.Tag, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.translations[lang][key]; ok {
		return msg, true
	}
	msg, ok := b.translations[b.defaultLang][key]

	return msg, ok
}

// AddLanguage adds a language or merges translations into an existing one. A new non-default
// language must provide exactly the keys of the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	original, existed := b.translations[lang]
	merged := make(map[string]string, len(original)+len(translations))
	for k, v := range original {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}
	b.translations[lang] = merged

	if lang != b.defaultLang && !existed {
		if errs := b.validateLanguage(lang); len(errs) > 0 {
			delete(b.translations, lang)
			return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			if existed {
				b.translations[lang] = original
			} else {
				delete(b.translations, lang)
			}
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))

	return nil
}

// HasLanguage checks if a language is supported
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.translations[lang]

	return exists
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.translations[lang][key]

	return exists
}

// Languages returns the supported languages in a stable order
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// Match returns the best supported language for the requested one
func (b *Bundle) Match(requested language.Tag) language.Tag {
	supported := b.Languages()
	if len(supported) == 0 {
		return b.DefaultLanguage()
	}
	_, idx, conf := language.NewMatcher(supported).Match(requested)
	if conf == language.No {
		return b.DefaultLanguage()
	}

	return supported[idx]
}

// DefaultLanguage returns the default language
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

// SetDefaultLanguage sets the default language
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultLang = lang
}

func (b *Bundle) loadFile(fs embed.FS, lang language.Tag, name string) error {
	data, err := fs.ReadFile(name)
	if err != nil {
		return err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return b.AddLanguage(lang, translations)
}

func (b *Bundle) validateLanguage(lang language.Tag) []error {
	var errs []error

	translations := b.translations[lang]
	if len(translations) == 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrEmptyTranslations, lang))
	}

	defaults, ok := b.translations[b.defaultLang]
	if !ok {
		return append(errs, fmt.Errorf("%w: %s", ErrLanguageNotFound, b.defaultLang))
	}
	for key := range defaults {
		if _, exists := translations[key]; !exists {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, exists := defaults[key]; !exists {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return errs
}
