package passy

const (
	// MinLength is the shortest password the sampler produces.
	MinLength = 1
	// MaxLength is the longest password the sampler produces.
	MaxLength = 1024
)

// Policy describes what kind of password to generate.
//
// A Policy is plain data built per request. Out-of-range lengths are clamped
// into [MinLength, MaxLength] and an all-false class selection falls back to
// the alphanumeric charset, so every Policy value is usable.
type Policy struct {
	Length         int
	UseLower       bool
	UseUpper       bool
	UseDigits      bool
	UseSymbols     bool
	AvoidAmbiguous bool
}

// DefaultPolicy returns the policy the desktop generator starts with.
func DefaultPolicy() Policy {
	return Policy{
		Length:         16,
		UseLower:       true,
		UseUpper:       true,
		UseDigits:      true,
		UseSymbols:     true,
		AvoidAmbiguous: true,
	}
}

// ClampedLength returns Length clamped into [MinLength, MaxLength].
func (p Policy) ClampedLength() int {
	return min(max(p.Length, MinLength), MaxLength)
}

// UsesAlpha reports whether both letter cases are enabled. This is the
// "use_alpha" switch of the bridge wire format.
func (p Policy) UsesAlpha() bool {
	return p.UseLower && p.UseUpper
}

// hasClasses reports whether any character class is enabled.
func (p Policy) hasClasses() bool {
	return p.UseLower || p.UseUpper || p.UseDigits || p.UseSymbols
}

// fastPath reports whether the policy is served by the built-in
// alphanumeric sampler. AvoidAmbiguous is ignored on this path.
func (p Policy) fastPath() bool {
	return p.UsesAlpha() && p.UseDigits && !p.UseSymbols
}

// Options is the JSON shape the desktop bridge sends for generation and
// preview requests.
//
// use_alpha toggles both letter cases at once. use_lower and use_upper allow
// callers to pick a single case.
type Options struct {
	Length         int  `json:"length"`
	UseAlpha       bool `json:"use_alpha"`
	UseLower       bool `json:"use_lower,omitempty"`
	UseUpper       bool `json:"use_upper,omitempty"`
	UseNumeric     bool `json:"use_numeric"`
	UseSymbols     bool `json:"use_symbols"`
	AvoidAmbiguous bool `json:"avoid_ambiguous,omitempty"`
}

// Policy converts wire options into a Policy.
func (o Options) Policy() Policy {
	return Policy{
		Length:         o.Length,
		UseLower:       o.UseAlpha || o.UseLower,
		UseUpper:       o.UseAlpha || o.UseUpper,
		UseDigits:      o.UseNumeric,
		UseSymbols:     o.UseSymbols,
		AvoidAmbiguous: o.AvoidAmbiguous,
	}
}

// OptionsFromPolicy converts a Policy into its wire form.
func OptionsFromPolicy(p Policy) Options {
	o := Options{
		Length:         p.Length,
		UseNumeric:     p.UseDigits,
		UseSymbols:     p.UseSymbols,
		AvoidAmbiguous: p.AvoidAmbiguous,
	}
	if p.UsesAlpha() {
		o.UseAlpha = true
	} else {
		o.UseLower = p.UseLower
		o.UseUpper = p.UseUpper
	}
	return o
}
