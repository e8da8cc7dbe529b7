package pkg

// AlphaMode selects how the flag bit of a packed colour becomes alpha.
// Decoders default to AlphaOpaque, so colours whose flag bit is clear still
// render; pass WithAlpha(AlphaFromFlag) to honour the bit instead.
type AlphaMode int

const (
	// AlphaOpaque ignores the flag bit; every colour is fully opaque.
	AlphaOpaque AlphaMode = iota

	// AlphaFromFlag maps the flag bit to 0x00 or 0xff.
	AlphaFromFlag
)

// SectionPolicy decides what happens when a cell bank ends without its
// label or user extension section.
type SectionPolicy int

const (
	// SectionsStrict rejects a cell bank missing either section.
	SectionsStrict SectionPolicy = iota

	// SectionsLenient accepts a missing section and leaves it empty.
	SectionsLenient
)

type options struct {
	alpha    AlphaMode
	sections SectionPolicy
}

// Option configures a decoder.
type Option func(*options)

// WithAlpha sets how palette colours derive their alpha.
func WithAlpha(mode AlphaMode) Option {
	return func(o *options) {
		o.alpha = mode
	}
}

// WithSectionPolicy sets how a cell bank without LABL or UEXT is treated.
func WithSectionPolicy(policy SectionPolicy) Option {
	return func(o *options) {
		o.sections = policy
	}
}

func newOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
