package i18n

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error whose message is looked up by key
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// MessageProvider renders the message for a key
type MessageProvider interface {
	Sprintf(key string, args ...interface{}) string
}

// BundleMessageProvider renders messages from a Bundle in a fixed language
type BundleMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// NewBundleMessageProvider creates a provider rendering messages from bundle in lang
func NewBundleMessageProvider(bundle *Bundle, lang language.Tag) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: bundle, lang: lang}
}

// Sprintf renders key with args
func (p *BundleMessageProvider) Sprintf(key string, args ...interface{}) string {
	if p.bundle == nil {
		return key
	}

	return p.bundle.TL(p.lang, key, args...)
}

// Language returns the language the provider renders in
func (p *BundleMessageProvider) Language() language.Tag {
	return p.lang
}

// TrError is a translatable error with optional formatting arguments and error wrapping.
// Copies produced by WithArgs and Wrap still match the original with errors.Is.
//
// Example usage:
//
//	var ErrThing = NewError("argmatch.error.thing")
//	err := ErrThing.WithArgs("value").Wrap(cause)
//	errors.Is(err, ErrThing) // true
type TrError struct {
	sentinel *TrError
	key      string
	args     []interface{}
	wrapped  error
}

// NewError creates a new translatable sentinel error with a key
func NewError(key string) *TrError {
	e := &TrError{key: key}
	e.sentinel = e

	return e
}

// Error renders the message through the default provider
func (e *TrError) Error() string {
	msg := DefaultProvider().Sprintf(e.key, e.args...)
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}

	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{sentinel: e.sentinel, key: e.key, args: args, wrapped: e.wrapped}
}

// Wrap returns a copy of the error wrapping err
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{sentinel: e.sentinel, key: e.key, args: e.args, wrapped: err}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok && t != nil {
		return e.sentinel == t.sentinel
	}

	return false
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used to render every TrError
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

// DefaultProvider returns the provider used to render every TrError
func DefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()
	if p != nil {
		return p
	}

	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	if defaultProvider == nil {
		defaultProvider = NewBundleMessageProvider(Default(), language.English)
	}

	return defaultProvider
}
