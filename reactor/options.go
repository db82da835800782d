package reactor

// Options configures a cell at construction time (spec.md §6).
type Options[T any] struct {
	// Name is the diagnostic label surfaced as DisplayName and fed to
	// the hook table.
	Name string

	// Equals is the equality policy; the zero value falls back to
	// Identity[T]().
	Equals Equals[T]

	// Lazy defers a derived cell's first computation until its first
	// read or first subscriber (spec.md §4.1/§8).
	Lazy bool
}

func (o Options[T]) equalsOrDefault() Equals[T] {
	if o.Equals != nil {
		return o.Equals
	}
	return Identity[T]()
}

func mergeOptions[T any](opts []Options[T]) Options[T] {
	var merged Options[T]
	for _, o := range opts {
		if o.Name != "" {
			merged.Name = o.Name
		}
		if o.Equals != nil {
			merged.Equals = o.Equals
		}
		if o.Lazy {
			merged.Lazy = true
		}
	}
	return merged
}
