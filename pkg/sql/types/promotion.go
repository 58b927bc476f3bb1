// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

// numericRank orders the numeric families for promotion:
// U_INT < INT < LONG < U_BIGINT < FLOAT < DOUBLE < DECIMAL.
// A zero rank means the family is not numeric.
var numericRank = [numFamilies]int{
	BoolFamily:    2,
	UIntFamily:    1,
	IntFamily:     2,
	LongFamily:    3,
	UBigIntFamily: 4,
	FloatFamily:   5,
	UFloatFamily:  5,
	DoubleFamily:  6,
	UDoubleFamily: 6,
	DecimalFamily: 7,
}

// numericByRank maps a rank back to the family a promoted result
// takes.
var numericByRank = [...]Family{
	1: UIntFamily,
	2: LongFamily,
	3: LongFamily,
	4: UBigIntFamily,
	5: DoubleFamily,
	6: DoubleFamily,
	7: DecimalFamily,
}

// ArithmeticOperand returns the family an operand of the given family
// takes part in numeric arithmetic as. Strings are coerced to DOUBLE,
// booleans to LONG. The second result is false for families that
// cannot take part in numeric arithmetic.
func ArithmeticOperand(f Family) (Family, bool) {
	switch {
	case f.IsString():
		return DoubleFamily, true
	case f == NullFamily:
		return NullFamily, true
	case numericRank[f] > 0:
		return f, true
	}
	return UnsupportedFamily, false
}

// NumericPromotion returns the family of the result of a binary numeric
// operation over operands of families a and b. The ok result is false
// if either family is not numeric (after string coercion). An untyped
// NULL operand takes the type of the other operand.
//
// Results are widened to 64 bits: INT op INT is LONG, FLOAT op FLOAT is
// DOUBLE. U_INT op U_INT stays U_INT, widened to the 64-bit unsigned
// range.
func NumericPromotion(a, b Family) (Family, bool) {
	a, okA := ArithmeticOperand(a)
	b, okB := ArithmeticOperand(b)
	if !okA || !okB {
		return UnsupportedFamily, false
	}
	if a == NullFamily && b == NullFamily {
		return LongFamily, true
	}
	if a == NullFamily {
		a = b
	} else if b == NullFamily {
		b = a
	}
	ra, rb := numericRank[a], numericRank[b]
	if rb > ra {
		ra = rb
	}
	return numericByRank[ra], true
}

// CanonicalNumeric returns the 64-bit family used to carry results of
// the given numeric family.
func CanonicalNumeric(f Family) Family {
	if r := numericRank[f]; r > 0 {
		return numericByRank[r]
	}
	return f
}
