package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names manifests built from inline tokens without a name.
const DefaultThemeName = "default"

// DefaultThemeVersion is stamped on manifests built from inline tokens.
const DefaultThemeVersion = "1.0.0"

// ThemeSource describes a theme as an optional base manifest plus inline
// overrides. Inline tokens win over the manifest's base tokens and inline
// variant tokens over the manifest's variant tokens.
type ThemeSource struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	Variants map[string]map[string]string
	Manifest *theme.Manifest
}

func (src ThemeSource) empty() bool {
	return strings.TrimSpace(src.Name) == "" && src.Manifest == nil &&
		len(src.Tokens) == 0 && len(src.Variants) == 0
}

// ThemeManifest merges the inline overrides of src into a new manifest.
func ThemeManifest(src ThemeSource) *theme.Manifest {
	manifest := &theme.Manifest{}
	if src.Manifest != nil {
		*manifest = *src.Manifest
	}
	if name := strings.TrimSpace(src.Name); name != "" {
		manifest.Name = name
	}
	if manifest.Name == "" {
		manifest.Name = DefaultThemeName
	}
	if manifest.Version == "" {
		manifest.Version = DefaultThemeVersion
	}

	manifest.Tokens = mergeTokens(manifest.Tokens, src.Tokens)
	variants := make(map[string]theme.Variant, len(manifest.Variants)+len(src.Variants))
	for name, variant := range manifest.Variants {
		variant.Tokens = mergeTokens(variant.Tokens, nil)
		variants[name] = variant
	}
	for name, tokens := range src.Variants {
		variant := variants[name]
		variant.Tokens = mergeTokens(variant.Tokens, tokens)
		variants[name] = variant
	}
	manifest.Variants = variants
	return manifest
}

// mergeTokens copies base and applies overrides. Keys lose a leading "--" so
// the selector can add its own prefix.
func mergeTokens(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for _, tokens := range []map[string]string{base, overrides} {
		for key, value := range tokens {
			key = strings.TrimPrefix(strings.TrimSpace(key), "--")
			if key == "" {
				continue
			}
			out[key] = value
		}
	}
	return out
}

// SelectTheme resolves a theme and variant through selector and bundles the
// result for renderers.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if selection.Variant != "" && selection.Manifest != nil {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}
	cfg := selection.RendererTheme(nil)
	return &cfg, nil
}

// ResolveTheme registers the manifest described by src in a fresh registry
// and selects src.Variant from it. An empty source resolves to nil.
func ResolveTheme(src ThemeSource) (*theme.RendererConfig, error) {
	if src.empty() {
		return nil, nil
	}
	manifest := ThemeManifest(src)
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("render: theme %q: %w", manifest.Name, err)
	}
	return SelectTheme(theme.Selector{
		Registry:     registry,
		DefaultTheme: manifest.Name,
	}, manifest.Name, src.Variant)
}

// CSSVarsStyle renders custom properties as a ":root" rule with keys in
// sorted order. Declarations whose name or value could terminate the rule
// are skipped.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if unsafeCSS(key) || unsafeCSS(vars[key]) || !strings.HasPrefix(key, "--") {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(vars[key]))
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func unsafeCSS(s string) bool {
	return strings.ContainsAny(s, ";{}<>\"'\\\n")
}
