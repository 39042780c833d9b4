package routes

// Provider exposes the current set of action descriptors.
type Provider interface {
	Descriptors() []Descriptor
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() []Descriptor

func (f ProviderFunc) Descriptors() []Descriptor { return f() }

// Table is a fixed list of descriptors.
type Table []Descriptor

func (t Table) Descriptors() []Descriptor { return t }

// Combine returns a provider listing the descriptors of each provider in turn.
func Combine(providers ...Provider) Provider {
	return ProviderFunc(func() []Descriptor {
		var all []Descriptor
		for _, p := range providers {
			if p == nil {
				continue
			}
			all = append(all, p.Descriptors()...)
		}
		return all
	})
}
