package widgets

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Matcher decides whether a registered widget should handle the field.
type Matcher func(field model.FormField) bool

type rule struct {
	widget   Widget
	priority int
	match    Matcher
	order    int
}

// Registry lets renderers override the default type mapping for selected
// fields. Higher priority wins; ties fall back to registration order. When
// no matcher applies, Resolve falls back to For.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an override. Widgets without a kind are ignored.
func (r *Registry) Register(widget Widget, priority int, matcher Matcher) {
	if r == nil || matcher == nil || widget.Kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		widget:   widget,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget for a field.
func (r *Registry) Resolve(field model.FormField) Widget {
	if r == nil {
		return For(field.Type)
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return For(field.Type)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.widget
		}
	}
	return For(field.Type)
}
