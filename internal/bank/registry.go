package bank

// Registry maps institution ids to adapters.
type Registry struct {
	fallback Adapter
	variants []*Variant
	byID     map[string]*Variant
}

// NewRegistry indexes variants by institution id. When two variants claim
// the same id the one listed first wins.
func NewRegistry(fallback Adapter, variants ...*Variant) *Registry {
	r := &Registry{
		fallback: fallback,
		variants: variants,
		byID:     make(map[string]*Variant),
	}
	for _, v := range variants {
		for _, id := range v.InstitutionIDs {
			if _, taken := r.byID[id]; !taken {
				r.byID[id] = v
			}
		}
	}
	return r
}

// DefaultRegistry serves every shipped variant and falls back to Default.
func DefaultRegistry() *Registry {
	return NewRegistry(NewDefault(), Institutions()...)
}

// Resolve returns the adapter for institutionID. Unknown ids get the
// fallback adapter.
func (r *Registry) Resolve(institutionID string) Adapter {
	if v, ok := r.byID[institutionID]; ok {
		return v
	}
	return r.fallback
}

// Variants lists the registered variants in registration order.
func (r *Registry) Variants() []*Variant {
	out := make([]*Variant, len(r.variants))
	copy(out, r.variants)
	return out
}
