package parser

import "strings"

// BuiltinNamespace prefixes the platform's predefined intents and slot types.
const BuiltinNamespace = "AMAZON."

type Document struct {
	InteractionModel *InteractionModel `json:"interactionModel"`
}

type InteractionModel struct {
	LanguageModel *LanguageModel `json:"languageModel"`
}

type LanguageModel struct {
	InvocationName string     `json:"invocationName,omitempty"`
	Intents        []Intent   `json:"intents"`
	Types          []SlotType `json:"types,omitempty"`
}

type Intent struct {
	Name    string            `json:"name"`
	Samples []string          `json:"samples"`
	Slots   []SlotDeclaration `json:"slots,omitempty"`
}

type SlotDeclaration struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type SlotType struct {
	Name   string      `json:"name"`
	Values []SlotValue `json:"values"`
}

type SlotValue struct {
	ID   string        `json:"id,omitempty"`
	Name SlotValueName `json:"name"`
}

// SlotValueName holds one enumeration entry. Value is nil when the entry has
// no canonical value, which is different from an empty one.
type SlotValueName struct {
	Value    *string  `json:"value,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// IsBuiltin reports whether the intent name falls in the built-in namespace.
// The check is a substring match so that names like "Custom.AMAZON.Foo" are
// excluded too.
func (i Intent) IsBuiltin() bool {
	return strings.Contains(i.Name, BuiltinNamespace)
}

// Slot returns the first declaration bound to the placeholder name.
func (i Intent) Slot(name string) (SlotDeclaration, bool) {
	for _, slot := range i.Slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return SlotDeclaration{}, false
}

func (s SlotDeclaration) IsBuiltin() bool {
	return strings.HasPrefix(s.Type, BuiltinNamespace)
}

// Placeholder is the literal token the declaration is referenced by in sample text.
func (s SlotDeclaration) Placeholder() string {
	return "{" + s.Name + "}"
}

// Surfaces returns the canonical value followed by the synonyms, in order.
func (v SlotValue) Surfaces() []string {
	var out []string
	if v.Name.Value != nil {
		out = append(out, *v.Name.Value)
	}
	return append(out, v.Name.Synonyms...)
}
