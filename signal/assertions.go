package signal

// AssertIsEqual records a constraint forcing i1 - i2 to be zero. Recording
// always succeeds structurally; during witness generation the backend reports
// a constraint violation if the concrete values differ.
func (b *Builder) AssertIsEqual(i1, i2 Signal) error {
	diff := b.Sub(i1, i2)
	if diff.IsZero() {
		return nil
	}
	return b.sys.Enforce(One().lc(), diff.lc(), Zero().lc())
}

// AssertIsBoolean constrains i to {0,1} via i·(1-i) = 0. A Signal must be
// boolean-asserted before it may drive a Select. Structurally equal signals
// are constrained at most once.
func (b *Builder) AssertIsBoolean(i Signal) error {
	if c, ok := i.AsConstant(); ok {
		if c.IsZero() || c.IsOne() {
			return nil
		}
		// record the (unsatisfiable) constraint rather than failing
		// structurally; the violation surfaces with the witness
	}
	if b.isBoolean(i) {
		return nil
	}
	oneMinus := b.Sub(One(), i)
	if err := b.sys.Enforce(i.lc(), oneMinus.lc(), Zero().lc()); err != nil {
		return err
	}
	b.markBoolean(i)
	return nil
}

// isBoolean reports whether a structurally equal signal was already
// boolean-constrained.
func (b *Builder) isBoolean(i Signal) bool {
	for _, s := range b.mtBooleans[i.hashCode()] {
		if s.StructurallyEqual(i) {
			return true
		}
	}
	return false
}

func (b *Builder) markBoolean(i Signal) {
	k := i.hashCode()
	b.mtBooleans[k] = append(b.mtBooleans[k], i)
}
