package ember

import "fmt"

// StepMode selects how a caller-supplied frame delta is decomposed into
// physics sub-steps.
type StepMode int

const (
	// StepReal performs one sub-step of exactly the caller's delta.
	StepReal StepMode = iota
	// StepConstant performs floor(delta/Constant) sub-steps of size
	// Constant. The remainder is dropped, so simulated time can drift from
	// wall time under variable frame rates.
	StepConstant
	// StepAdaptive performs one sub-step of the caller's delta while it
	// lies within [Min, Max]; outside that range it degenerates to constant
	// stepping at the violated bound (so a delta below Min yields zero
	// sub-steps, and a delta above Max yields floor(delta/Max) sub-steps of
	// Max).
	StepAdaptive
)

// StepConfig is a system's stepping policy. The zero value is real
// stepping without clamping.
type StepConfig struct {
	Mode StepMode

	// Constant is the sub-step size for StepConstant.
	Constant float32

	// Min and Max bound the sub-step size for StepAdaptive.
	Min float32
	Max float32

	// Clamp, when set, caps the caller's delta to ClampValue before any
	// decomposition, preventing catch-up bursts after a stall.
	Clamp      bool
	ClampValue float32
}

// validate checks the parts of the config its mode uses. Inverted adaptive
// bounds are swapped in place with a warning; impossible values are errors.
func (c *StepConfig) validate() error {
	switch c.Mode {
	case StepReal:
	case StepConstant:
		if c.Constant <= 0 {
			return fmt.Errorf("constant step must be positive, got %g", c.Constant)
		}
	case StepAdaptive:
		if c.Min <= 0 || c.Max <= 0 {
			return fmt.Errorf("adaptive step bounds must be positive, got (%g, %g)", c.Min, c.Max)
		}
		if c.Min > c.Max {
			warnf(CodeInvertedRange, "adaptive step min %g is higher than max %g; swapping", c.Min, c.Max)
			c.Min, c.Max = c.Max, c.Min
		}
	default:
		return fmt.Errorf("unknown step mode %d", c.Mode)
	}
	if c.Clamp && c.ClampValue <= 0 {
		return fmt.Errorf("clamp value must be positive, got %g", c.ClampValue)
	}
	return nil
}

// steps decomposes delta into count sub-steps of the given size.
func (c *StepConfig) steps(delta float32) (count int, size float32) {
	if c.Clamp && delta > c.ClampValue {
		delta = c.ClampValue
	}
	switch c.Mode {
	case StepConstant:
		return int(delta / c.Constant), c.Constant
	case StepAdaptive:
		switch {
		case delta < c.Min:
			return int(delta / c.Min), c.Min
		case delta > c.Max:
			return int(delta / c.Max), c.Max
		default:
			return 1, delta
		}
	default:
		return 1, delta
	}
}
