// Package expr implements the symbolic constraint expression language and its
// evaluator: the mixed-domain evaluation arithmetic, the expression tree and
// its peephole simplifications, monomial expansion, and linearization around
// a challenge point.
package expr

import "fmt"

// ColumnKind discriminates which evaluation-vector source a Variable's column
// reads from. Order matters: monomial canonicalization sorts Variables by
// (column, row) and the column order below is the ordering that sort uses —
// Witness(i) < Z < LookupSorted(i) < LookupAggreg < LookupTable <
// LookupKindIndex(i) < Index(kind).
type ColumnKind int

const (
	ColumnWitness ColumnKind = iota
	ColumnZ
	ColumnLookupSorted
	ColumnLookupAggreg
	ColumnLookupTable
	ColumnLookupKindIndex
	ColumnIndex
	ColumnSigma
)

// GateType enumerates the gate families a selector (Index) column can name.
// PERM is not a selector column — the permutation argument is not
// gate-selected — so it is not a GateType; it only appears as an alpha range.
type GateType int

const (
	GateGeneric GateType = iota
	GatePoseidon
	GateAdd
	GateDouble
	GateEndoMul
	GateMul
)

// Column identifies the evaluation-vector source of a Cell. Index carries the
// Witness/LookupSorted/LookupKindIndex subscript i, or the GateType for
// Index columns; it is unused (zero) for Z and LookupAggreg/LookupTable.
type Column struct {
	Kind  ColumnKind
	Index int
}

func Witness(i int) Column          { return Column{Kind: ColumnWitness, Index: i} }
func Z() Column                     { return Column{Kind: ColumnZ} }
func LookupSorted(i int) Column     { return Column{Kind: ColumnLookupSorted, Index: i} }
func LookupAggreg() Column          { return Column{Kind: ColumnLookupAggreg} }
func LookupTable() Column           { return Column{Kind: ColumnLookupTable} }
func LookupKindIndex(i int) Column  { return Column{Kind: ColumnLookupKindIndex, Index: i} }
func IndexColumn(g GateType) Column { return Column{Kind: ColumnIndex, Index: int(g)} }

// Sigma names one precomputed permutation-sigma column. The prover leaves it
// out of Linearize's evaluated set (as it does the Index selector columns;
// see monomial.go's doc comment on the linearization split), since its
// per-column polynomial is what the prover folds into f(X) at the matching
// IndexTerm instead of substituting a known scalar.
func Sigma(i int) Column { return Column{Kind: ColumnSigma, Index: i} }

func (c Column) String() string {
	switch c.Kind {
	case ColumnWitness:
		return fmt.Sprintf("Witness(%d)", c.Index)
	case ColumnZ:
		return "Z"
	case ColumnLookupSorted:
		return fmt.Sprintf("LookupSorted(%d)", c.Index)
	case ColumnLookupAggreg:
		return "LookupAggreg"
	case ColumnLookupTable:
		return "LookupTable"
	case ColumnLookupKindIndex:
		return fmt.Sprintf("LookupKindIndex(%d)", c.Index)
	case ColumnIndex:
		return fmt.Sprintf("Index(%d)", GateType(c.Index))
	case ColumnSigma:
		return fmt.Sprintf("Sigma(%d)", c.Index)
	default:
		return "Column(?)"
	}
}

// Less implements the canonical column order used to sort monomial keys.
func (c Column) Less(o Column) bool {
	if c.Kind != o.Kind {
		return c.Kind < o.Kind
	}
	return c.Index < o.Index
}

// Row selects which evaluation row a Variable reads: the current row, or the
// next one (a shift of one position, used by permutation/turn constraints).
type Row int

const (
	Curr Row = iota
	Next
)

func (r Row) String() string {
	if r == Next {
		return "Next"
	}
	return "Curr"
}

// Variable names one cell of the witness/constraint-system evaluation
// tables: which column, and which of the two adjacent rows.
type Variable struct {
	Col Column
	Row Row
}

// Less implements the (column, row) lexicographic order monomial expansion
// relies on for deterministic multiset canonicalization.
func (v Variable) Less(o Variable) bool {
	if v.Col != o.Col {
		return v.Col.Less(o.Col)
	}
	return v.Row < o.Row
}
