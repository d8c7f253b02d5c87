package expr

import (
	"sort"
	"strings"

	"github.com/nume-crypto/kimchi-plonk/field"
)

// monomialEntry pairs a sorted multiset of Variables with the coefficient
// expression attached to that key.
type monomialEntry[T any, PT field.Element[T]] struct {
	Vars  []Variable
	Coeff *Expr[T, PT]
}

// monomialMap maps variable multisets to coefficient expressions: keys
// are sorted Variable multisets, encoded as a string since Go map keys must
// be comparable and a slice is not.
type monomialMap[T any, PT field.Element[T]] map[string]monomialEntry[T, PT]

func sortVariables(vars []Variable) []Variable {
	out := append([]Variable(nil), vars...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func monomialKey(vars []Variable) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v.Col.String())
		b.WriteByte('/')
		b.WriteString(v.Row.String())
		b.WriteByte(';')
	}
	return b.String()
}

// lessVarSlice orders two sorted Variable multisets lexicographically, used
// to make monomial-expansion output deterministic across runs regardless of
// Go's randomized map iteration order.
func lessVarSlice(a, b []Variable) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i].Less(b[i])
		}
	}
	return len(a) < len(b)
}

func sortedKeys[T any, PT field.Element[T]](m monomialMap[T, PT]) []string {
	type kv struct {
		key   string
		entry monomialEntry[T, PT]
	}
	kvs := make([]kv, 0, len(m))
	for k, v := range m {
		kvs = append(kvs, kv{k, v})
	}
	sort.Slice(kvs, func(i, j int) bool { return lessVarSlice(kvs[i].entry.Vars, kvs[j].entry.Vars) })
	keys := make([]string, len(kvs))
	for i, e := range kvs {
		keys[i] = e.key
	}
	return keys
}

// Monomials expands e into a mapping from sorted Variable multiset to
// coefficient expression: leaves without a Cell
// map the empty multiset to themselves, Cell(v) maps {v} to Constant(1),
// Add/Sub merge on colliding keys, and Mul is a distributive convolution.
func Monomials[T any, PT field.Element[T]](e *Expr[T, PT]) monomialMap[T, PT] {
	switch e.Kind {
	case KindCell:
		vars := []Variable{e.Cell}
		return monomialMap[T, PT]{monomialKey(vars): {Vars: vars, Coeff: Constant[T, PT](field.One[T, PT]())}}
	case KindAdd:
		return mergeMonomials[T, PT](Monomials[T, PT](e.Left), Monomials[T, PT](e.Right), false)
	case KindSub:
		return mergeMonomials[T, PT](Monomials[T, PT](e.Left), Monomials[T, PT](e.Right), true)
	case KindMul:
		return mulMonomials[T, PT](Monomials[T, PT](e.Left), Monomials[T, PT](e.Right))
	default:
		return monomialMap[T, PT]{monomialKey(nil): {Vars: nil, Coeff: e}}
	}
}

func mergeMonomials[T any, PT field.Element[T]](a, b monomialMap[T, PT], subtract bool) monomialMap[T, PT] {
	out := make(monomialMap[T, PT], len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok {
			var coeff *Expr[T, PT]
			if subtract {
				coeff = Sub[T, PT](existing.Coeff, v.Coeff)
			} else {
				coeff = Add[T, PT](existing.Coeff, v.Coeff)
			}
			out[k] = monomialEntry[T, PT]{Vars: existing.Vars, Coeff: coeff}
		} else {
			coeff := v.Coeff
			if subtract {
				coeff = Sub[T, PT](Constant[T, PT](field.Zero[T, PT]()), coeff)
			}
			out[k] = monomialEntry[T, PT]{Vars: v.Vars, Coeff: coeff}
		}
	}
	return out
}

func mulMonomials[T any, PT field.Element[T]](a, b monomialMap[T, PT]) monomialMap[T, PT] {
	out := make(monomialMap[T, PT], len(a)*len(b))
	// Iterate in sorted order so that, when two distinct (a-key,b-key) pairs
	// collide on the same combined key, the Add-tree they build is formed in
	// a deterministic order across runs.
	for _, ak := range sortedKeys[T, PT](a) {
		ea := a[ak]
		for _, bk := range sortedKeys[T, PT](b) {
			eb := b[bk]
			vars := sortVariables(append(append([]Variable(nil), ea.Vars...), eb.Vars...))
			k := monomialKey(vars)
			coeff := Mul[T, PT](ea.Coeff, eb.Coeff)
			if existing, ok := out[k]; ok {
				coeff = Add[T, PT](existing.Coeff, coeff)
			}
			out[k] = monomialEntry[T, PT]{Vars: vars, Coeff: coeff}
		}
	}
	return out
}

// IndexTerm is one entry of a Linearization's index_terms list: the
// coefficient expression attached to a single Curr-row column.
type IndexTerm[T any, PT field.Element[T]] struct {
	Col   Column
	Coeff *Expr[T, PT]
}

// Linearization is the output of Linearize: a constant part plus a list of
// per-column coefficient expressions, in canonical column order.
type Linearization[T any, PT field.Element[T]] struct {
	Constant   *Expr[T, PT]
	IndexTerms []IndexTerm[T, PT]
}

// Linearize splits the expression around the evaluation challenge: every
// monomial's variables are
// partitioned into evaluated (substituted by their Cell expression, since
// the verifier will plug in the known value) and unevaluated. Zero
// unevaluated variables joins the constant term; exactly one at row Curr
// accumulates into that column's index term; exactly one at row Next is an
// error (the linearized form has no Next-row slot); more than one is an
// error (linearization cannot resolve it to a single column).
func Linearize[T any, PT field.Element[T]](e *Expr[T, PT], evaluated map[Column]bool) (*Linearization[T, PT], error) {
	mono := Monomials[T, PT](e)

	constant := Constant[T, PT](field.Zero[T, PT]())
	indexByCol := make(map[Column]*Expr[T, PT])
	var order []Column

	for _, k := range sortedKeys[T, PT](mono) {
		entry := mono[k]
		coeff := entry.Coeff
		var unevaluated []Variable
		for _, v := range entry.Vars {
			if evaluated[v.Col] {
				coeff = Mul[T, PT](coeff, Cell[T, PT](v))
			} else {
				unevaluated = append(unevaluated, v)
			}
		}
		switch len(unevaluated) {
		case 0:
			constant = Add[T, PT](constant, coeff)
		case 1:
			v := unevaluated[0]
			if v.Row == Next {
				return nil, ErrLinearizationNeedsNextRow
			}
			if existing, ok := indexByCol[v.Col]; ok {
				indexByCol[v.Col] = Add[T, PT](existing, coeff)
			} else {
				indexByCol[v.Col] = coeff
				order = append(order, v.Col)
			}
		default:
			return nil, ErrLinearizationFailed
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })
	terms := make([]IndexTerm[T, PT], 0, len(order))
	for _, col := range order {
		terms = append(terms, IndexTerm[T, PT]{Col: col, Coeff: indexByCol[col]})
	}

	return &Linearization[T, PT]{Constant: constant, IndexTerms: terms}, nil
}

// CombineConstraints returns sum_k alpha^(alphaStart+k) * cs[k], using
// coefficient 1 (no Alpha multiplication) for the k=0 term iff alphaStart==0.
func CombineConstraints[T any, PT field.Element[T]](alphaStart int, cs []*Expr[T, PT]) *Expr[T, PT] {
	if len(cs) == 0 {
		return Constant[T, PT](field.Zero[T, PT]())
	}
	var acc *Expr[T, PT]
	for k, c := range cs {
		power := alphaStart + k
		var term *Expr[T, PT]
		if power == 0 {
			term = c
		} else {
			term = Mul[T, PT](Alpha[T, PT](power), c)
		}
		if acc == nil {
			acc = term
		} else {
			acc = Add[T, PT](acc, term)
		}
	}
	return acc
}
