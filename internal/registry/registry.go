// Package registry holds the static catalog of providers and the models each
// one offers. It is pure lookup: nothing here performs I/O or mutates
// conversation state.
package registry

import "fmt"

// ModelOption is a selectable model variant as shown in the UI selector.
type ModelOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type provider struct {
	name   string
	models []ModelOption
}

// The catalog is fixed at compile time. Order matters twice: the provider
// order drives the selector, and the first model of each provider is its
// default.
var catalog = []provider{
	{
		name: "openai",
		models: []ModelOption{
			{Value: "gpt-4o", Label: "GPT-4o"},
			{Value: "gpt-4", Label: "GPT-4"},
			{Value: "gpt-3.5-turbo", Label: "GPT-3.5 Turbo"},
		},
	},
	{
		name: "gemini",
		models: []ModelOption{
			{Value: "gemini-1.5-pro", Label: "Gemini 1.5 Pro"},
			{Value: "gemini-pro", Label: "Gemini Pro"},
		},
	},
	{
		name: "claude",
		models: []ModelOption{
			{Value: "claude-3-opus", Label: "Claude 3 Opus"},
			{Value: "claude-3-sonnet", Label: "Claude 3 Sonnet"},
			{Value: "claude-3-haiku", Label: "Claude 3 Haiku"},
		},
	},
	{
		name: "perplexity",
		models: []ModelOption{
			{Value: "pplx-7b-online", Label: "Perplexity 7B Online"},
			{Value: "pplx-70b-online", Label: "Perplexity 70B Online"},
		},
	},
}

// Providers returns the provider names in selector order.
func Providers() []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.name
	}
	return names
}

// IsKnown reports whether the provider is part of the fixed catalog.
func IsKnown(name string) bool {
	for _, p := range catalog {
		if p.name == name {
			return true
		}
	}
	return false
}

// ListModels returns the ordered model options for a provider. An unknown
// provider is a programming error: the UI selector is constrained to the
// catalog, so this should be unreachable from user input.
func ListModels(providerName string) ([]ModelOption, error) {
	for _, p := range catalog {
		if p.name == providerName {
			out := make([]ModelOption, len(p.models))
			copy(out, p.models)
			return out, nil
		}
	}
	return nil, fmt.Errorf("registry: unknown provider %q", providerName)
}

// DefaultModel returns the first listed model for a provider.
func DefaultModel(providerName string) (string, error) {
	models, err := ListModels(providerName)
	if err != nil {
		return "", err
	}
	return models[0].Value, nil
}

// OffersModel reports whether the provider lists the given model value.
func OffersModel(providerName, modelValue string) bool {
	models, err := ListModels(providerName)
	if err != nil {
		return false
	}
	for _, m := range models {
		if m.Value == modelValue {
			return true
		}
	}
	return false
}
