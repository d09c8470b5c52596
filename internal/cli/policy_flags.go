package cli

import (
	"github.com/MrEthical07/passy"
	"github.com/spf13/pflag"
)

// policyFlags binds a Policy to a flag set. Every class defaults on, as in
// passy.DefaultPolicy.
type policyFlags struct {
	policy passy.Policy
	alpha  bool
}

func addPolicyFlags(fs *pflag.FlagSet) *policyFlags {
	def := passy.DefaultPolicy()
	pf := &policyFlags{}

	fs.IntVarP(&pf.policy.Length, "length", "l", def.Length, "password length, clamped to [1, 1024]")
	fs.BoolVar(&pf.policy.UseLower, "lower", def.UseLower, "include lowercase letters")
	fs.BoolVar(&pf.policy.UseUpper, "upper", def.UseUpper, "include uppercase letters")
	fs.BoolVarP(&pf.alpha, "alpha", "a", true, "include both letter cases (--alpha=false drops both)")
	fs.BoolVarP(&pf.policy.UseDigits, "digits", "n", def.UseDigits, "include digits")
	fs.BoolVarP(&pf.policy.UseSymbols, "symbols", "s", def.UseSymbols, "include symbols")
	fs.BoolVar(&pf.policy.AvoidAmbiguous, "avoid-ambiguous", def.AvoidAmbiguous, "drop look-alike characters such as 0/O and 1/l")
	return pf
}

// resolve applies --alpha on top of the per-case flags. An explicit
// --alpha=false clears both cases unless a case flag was also given.
func (pf *policyFlags) resolve(fs *pflag.FlagSet) passy.Policy {
	p := pf.policy
	if fs.Changed("alpha") {
		if !fs.Changed("lower") {
			p.UseLower = pf.alpha
		}
		if !fs.Changed("upper") {
			p.UseUpper = pf.alpha
		}
	}
	return p
}
