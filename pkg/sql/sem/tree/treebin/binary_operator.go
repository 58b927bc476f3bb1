// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package treebin

import "fmt"

// BinaryOperatorSymbol represents a binary operator.
type BinaryOperatorSymbol uint8

// BinaryOperatorSymbol values.
const (
	Plus BinaryOperatorSymbol = iota
	Minus
	Mult
	Div
	IntDiv
	Mod
	Bitand
	Bitor
	Bitxor
	LShift
	RShift

	NumBinaryOperatorSymbols
)

var binaryOpName = [...]string{
	Plus:   "+",
	Minus:  "-",
	Mult:   "*",
	Div:    "/",
	IntDiv: "DIV",
	Mod:    "%",
	Bitand: "&",
	Bitor:  "|",
	Bitxor: "^",
	LShift: "<<",
	RShift: ">>",
}

func (i BinaryOperatorSymbol) String() string {
	if i >= NumBinaryOperatorSymbols {
		return fmt.Sprintf("BinaryOp(%d)", i)
	}
	return binaryOpName[i]
}

// IsBitwise is true for the operators over 64-bit unsigned integers.
func (i BinaryOperatorSymbol) IsBitwise() bool {
	return i >= Bitand && i < NumBinaryOperatorSymbols
}

// IsCommutative is true for the operators whose operands can be swapped.
func (i BinaryOperatorSymbol) IsCommutative() bool {
	switch i {
	case Plus, Mult, Bitand, Bitor, Bitxor:
		return true
	}
	return false
}
