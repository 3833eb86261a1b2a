package core

import (
	"strings"

	"github.com/tidwall/gjson"
)

// IdentifierFunc extracts lookup keys from a provider error body, most
// specific first. It returns nothing when the body is not a provider error
// object.
type IdentifierFunc func(body []byte) []string

type ClassifierTable[C comparable] struct {
	Provider    string
	Codes       map[string]C
	Unknown     C
	Unreachable C
	Internal    []C
	Identify    IdentifierFunc
}

// Classifier maps a transport failure onto a closed provider code set. It is
// a pure function of the failure; unmapped identifiers resolve to Unknown.
type Classifier[C comparable] struct {
	provider    string
	codes       map[string]C
	unknown     C
	unreachable C
	internal    map[C]struct{}
	identify    IdentifierFunc
}

func NewClassifier[C comparable](table ClassifierTable[C]) *Classifier[C] {
	codes := make(map[string]C, len(table.Codes))
	for key, code := range table.Codes {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		codes[key] = code
	}
	internal := make(map[C]struct{}, len(table.Internal))
	for _, code := range table.Internal {
		internal[code] = struct{}{}
	}
	identify := table.Identify
	if identify == nil {
		identify = FieldIdentifier("error")
	}
	return &Classifier[C]{
		provider:    strings.TrimSpace(table.Provider),
		codes:       codes,
		unknown:     table.Unknown,
		unreachable: table.Unreachable,
		internal:    internal,
		identify:    identify,
	}
}

func (c *Classifier[C]) Provider() string {
	if c == nil {
		return ""
	}
	return c.provider
}

func (c *Classifier[C]) Classify(err error) ClassifiedError[C] {
	code := c.code(AsTransportFailure(err))
	return ClassifiedError[C]{Code: code, Internal: c.IsInternal(code)}
}

func (c *Classifier[C]) code(failure *TransportFailure) C {
	if failure == nil {
		return c.unknown
	}
	if failure.HasResponse() && len(failure.Body) > 0 {
		return c.LookupBody(failure.Body)
	}
	if failure.Kind == FailureTransportUnreachable {
		return c.unreachable
	}
	return c.unknown
}

// LookupBody decodes a provider error body and maps it through the table.
func (c *Classifier[C]) LookupBody(body []byte) C {
	for _, key := range c.identify(body) {
		if code, ok := c.codes[strings.TrimSpace(key)]; ok {
			return code
		}
	}
	return c.unknown
}

func (c *Classifier[C]) Lookup(identifier string) C {
	if code, ok := c.codes[strings.TrimSpace(identifier)]; ok {
		return code
	}
	return c.unknown
}

func (c *Classifier[C]) IsInternal(code C) bool {
	_, ok := c.internal[code]
	return ok
}

// FieldIdentifier reads a single string field from a JSON error object.
func FieldIdentifier(path string) IdentifierFunc {
	return func(body []byte) []string {
		value, ok := BodyField(body, path)
		if !ok {
			return nil
		}
		return []string{value}
	}
}

// BodyField returns the string at path when body is a JSON object carrying a
// non-empty value there.
func BodyField(body []byte, path string) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", false
	}
	field := root.Get(path)
	if !field.Exists() || field.Type != gjson.String {
		return "", false
	}
	value := strings.TrimSpace(field.String())
	if value == "" {
		return "", false
	}
	return value, true
}
