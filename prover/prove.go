package prover

import (
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nume-crypto/kimchi-plonk/expr"
	"github.com/nume-crypto/kimchi-plonk/field"
)

// Create runs the full proving pipeline: commit -> challenge -> quotient ->
// evaluate -> linearize -> open. cs is the constraint system's
// precomputations; ring/commit/fqSponge/frSpongeFactory/endo wire the
// remaining external collaborators. A one-line zerolog entry at entry/exit
// is this package's only logging.
func Create[T any, PT field.Element[T], G any, O any](
	cs *ConstraintSystem[T, PT, G],
	ring PolyRing[T, PT],
	commit CommitmentScheme[T, PT, G, O],
	fqSponge FqSponge[T, PT, G],
	frSpongeFactory func() FrSponge[T, PT],
	endo EndoMap[T, PT],
	groupMap GroupMap,
	witness [][]T,
	public []T,
	prevChallenges []PrevChallenge[T, G],
	rng io.Reader,
) (*ProverProof[T, G, O], error) {
	log.Debug().Int("witness_columns", len(witness)).Msg("prover: starting proof")

	n := cs.Domains.H.Size
	if len(witness) != cs.NumWitnessColumns {
		return nil, ErrWitnessCsInconsistent
	}
	for _, col := range witness {
		if uint64(len(col)) != n {
			return nil, ErrWitnessCsInconsistent
		}
	}

	omega := cs.Domains.H.GroupGen
	l01 := expr.ComputeL01[T, PT](omega, n)

	// Step 0: absorb any recursion-carried challenge-polynomial commitments
	// first; prev_challenges precede the public-input commitment in the
	// transcript.
	for _, pc := range prevChallenges {
		fqSponge.AbsorbG(pc.Comm.Unshifted)
	}

	// Step 1: public-input polynomial, commit non-hiding, absorb.
	pubEvals := make([]T, n)
	copy(pubEvals, public)
	negOne := field.Neg[T, PT](field.One[T, PT]())
	pPoly := ring.Interpolate(cs.Domains.H, pubEvals).ScalarMul(negOne)
	commitP := commit.CommitNonHiding(pPoly, 0)
	fqSponge.AbsorbG(commitP.Unshifted)

	// Step 2: witness polynomials, commit hiding, absorb.
	wPolys := make([]Polynomial[T, PT], cs.NumWitnessColumns)
	wCommits := make([]Commitment[G], cs.NumWitnessColumns)
	wBlinds := make([]Blinding[T], cs.NumWitnessColumns)
	for i, col := range witness {
		wPolys[i] = ring.Interpolate(cs.Domains.H, col)
		var err error
		wCommits[i], wBlinds[i], err = commit.Commit(wPolys[i], 0, rng)
		if err != nil {
			return nil, err
		}
		fqSponge.AbsorbG(wCommits[i].Unshifted)
	}

	// Step 3: β, γ.
	beta := fqSponge.Challenge()
	gamma := fqSponge.Challenge()

	// Step 4: grand-product z.
	zEvals, err := computeGrandProduct[T, PT](cs, witness, beta, gamma, omega, l01)
	if err != nil {
		return nil, err
	}
	zPolyBase := ring.Interpolate(cs.Domains.H, zEvals)
	zBlindPoly := ring.Random(2, rng)
	zPoly := zPolyBase.Add(zBlindPoly.MulByVanishing(cs.Domains.H))

	// Step 5: commit z, absorb, sample α.
	zCommit, zBlind, err := commit.Commit(zPoly, 0, rng)
	if err != nil {
		return nil, err
	}
	fqSponge.AbsorbG(zCommit.Unshifted)
	alphaChal := fqSponge.ScalarChallengeSqueeze()
	alpha := endo.ToField(alphaChal)
	ranges := cs.Ranges

	oracles := expr.RandomOracles[T]{Alpha: alpha, Beta: beta, Gamma: gamma}

	// Step 6: evaluations over extended domains (the Environment).
	env := expr.NewEnvironment[T, PT](n, omega, cs.H4.GroupGen, cs.H8.GroupGen, l01)
	env.Oracles = oracles
	// Lifting each column to H8 is an independent FFT per polynomial, the
	// one embarrassingly parallel fan-out in the pipeline; the transcript
	// itself stays strictly sequential.
	env.Witness = make([][]T, cs.NumWitnessColumns)
	var lift errgroup.Group
	for i, p := range wPolys {
		i, p := i, p
		lift.Go(func() error {
			env.Witness[i] = p.EvalDomain(cs.H8)
			return nil
		})
	}
	lift.Go(func() error {
		env.Z = zPoly.EvalDomain(cs.H8)
		return nil
	})
	if err := lift.Wait(); err != nil {
		return nil, err
	}
	env.Sigma = make([][]T, len(cs.Sigma))
	for i, s := range cs.Sigma {
		env.Sigma[i] = s.EvalsH8
	}
	for g, evals := range cs.SelectorEvalsH8 {
		env.SetGate(g, evals)
	}
	if cs.ZkPolynomialEvalsH8 != nil {
		env.ZkPolynomial = cs.ZkPolynomialEvalsH8
	} else {
		env.ZkPolynomial = make([]T, expr.D8.Size(n))
	}

	// Step 7: quotient polynomial t. The permutation boundary term is
	// folded into the unified constraint sum (see gates.go permConstraint)
	// rather than added to t as a separate polynomial afterwards.
	combined := CombinedConstraint[T, PT](ranges)
	combinedEvals := combined.Evaluations(env)
	tag, ok := expr.ChooseDomain(combined.Degree(n), n)
	if !ok {
		panic("prover: combined constraint degree exceeds 8|H|")
	}
	extDomain := cs.Domains.H
	switch tag {
	case expr.D4:
		extDomain = cs.H4
	case expr.D8:
		extDomain = cs.H8
	}
	tFull := ring.Interpolate(extDomain, combinedEvals)
	tPoly, _, divOK := tFull.DivideByVanishing(cs.Domains.H)
	if !divOK {
		return nil, ErrPolyDivision
	}

	// Step 8: commit t, chunked, padded to MaxQuotSize with identity
	// commitments, absorbed in order, then sample ζ.
	tChunks := tPoly.Chunks(cs.MaxPolySize)
	tCommits := make([]Commitment[G], cs.MaxQuotSize)
	for i := 0; i < cs.MaxQuotSize; i++ {
		if i < len(tChunks) {
			tCommits[i] = commit.CommitNonHiding(tChunks[i], 0)
		} else {
			// Pad the absorption to MaxQuotSize with commitments to the
			// zero polynomial (the curve identity point) so the transcript
			// length does not depend on the quotient's actual chunk count.
			tCommits[i] = commit.CommitNonHiding(ring.Zero(), 0)
		}
		fqSponge.AbsorbG(tCommits[i].Unshifted)
	}
	zeta := fqSponge.Challenge()
	zetaOmega := field.Mul[T, PT](zeta, omega)

	// Step 9: chunked evaluations at ζ and ζω.
	evalsAtZeta := buildProofEvaluations[T, PT](cs, wPolys, zPoly, zeta)
	evalsAtZetaOmega := buildProofEvaluations[T, PT](cs, wPolys, zPoly, zetaOmega)

	// Step 10: linearization polynomial f and ft.
	zetaPowChunk := field.Pow[T, PT](zeta, uint64(cs.MaxPolySize))
	scalarEnv := &expr.ScalarEnv[T, PT]{
		Oracles: oracles, HSize: n, Omega: omega,
		ZkPolynomialAt: zkPolynomialAtOrZero[T, PT](cs),
		EvalsCurr:      foldProofEvaluations[T, PT](evalsAtZeta, zetaPowChunk),
		EvalsNext:      foldProofEvaluations[T, PT](evalsAtZetaOmega, zetaPowChunk),
	}

	evaluated := map[expr.Column]bool{expr.Z(): true}
	for i := 0; i < cs.NumWitnessColumns; i++ {
		evaluated[expr.Witness(i)] = true
	}
	lin, err := expr.Linearize[T, PT](combined, evaluated)
	if err != nil {
		return nil, err
	}

	// fPoly folds each IndexTerm's ζ-evaluated coefficient back onto its
	// column's own committable polynomial: a gate selector for ColumnIndex
	// terms, ConstraintSystem.SigmaLast for the single ColumnSigma term the
	// permutation argument's recurrence leaves unevaluated.
	fPoly := ring.Zero()
	for _, term := range lin.IndexTerms {
		coeff, err := term.Coeff.Evaluate(scalarEnv, zeta)
		if err != nil {
			return nil, err
		}
		switch term.Col.Kind {
		case expr.ColumnIndex:
			selPoly, ok := cs.SelectorPolys[expr.GateType(term.Col.Index)]
			if !ok {
				continue
			}
			fPoly = fPoly.Add(selPoly.ScalarMul(coeff))
		case expr.ColumnSigma:
			fPoly = fPoly.Add(cs.SigmaLast.ScalarMul(coeff))
		}
	}

	fChunked := fPoly.ChunkPolynomial(zeta, cs.MaxPolySize)
	tChunked := tPoly.ChunkPolynomial(zeta, cs.MaxPolySize)
	ftPoly := fChunked.Sub(tChunked.ScalarMul(field.Sub[T, PT](zetaPowChunk, field.One[T, PT]())))
	ftEval1 := ftPoly.Eval(zetaOmega)

	// Step 11: Fr-sponge, squeeze v, u.
	frSponge := frSpongeFactory()
	frSponge.AbsorbDigest(fqSponge.Digest())
	if !pPoly.IsZero() {
		frSponge.AbsorbPublicEvalChunks(pPoly.EvalChunked(zeta, cs.MaxPolySize))
		frSponge.AbsorbPublicEvalChunks(pPoly.EvalChunked(zetaOmega, cs.MaxPolySize))
	}
	frSponge.AbsorbProofEvaluations(evalsAtZeta)
	frSponge.AbsorbProofEvaluations(evalsAtZetaOmega)
	frSponge.Absorb(ftEval1)
	v := endo.ToField(frSponge.ScalarChallengeSqueeze())
	u := endo.ToField(frSponge.ScalarChallengeSqueeze())

	// Step 12: opening proof.
	openInputs := make([]OpeningInput[T, PT], 0, 4+cs.NumWitnessColumns+cs.NumPermColumns)
	for _, pc := range prevChallenges {
		openInputs = append(openInputs, OpeningInput[T, PT]{Poly: ring.FromCoefficients(bPolyCoefficients[T, PT](pc.Chals))})
	}
	openInputs = append(openInputs, OpeningInput[T, PT]{Poly: pPoly})
	for i, wp := range wPolys {
		openInputs = append(openInputs, OpeningInput[T, PT]{Poly: wp, Blinding: wBlinds[i].ChunkBlinding(zeta)})
	}
	openInputs = append(openInputs, OpeningInput[T, PT]{Poly: zPoly, Blinding: zBlind.ChunkBlinding(zeta)})
	for _, s := range cs.Sigma {
		openInputs = append(openInputs, OpeningInput[T, PT]{Poly: s.Poly})
	}
	openInputs = append(openInputs, OpeningInput[T, PT]{Poly: ftPoly})

	openingProof, err := commit.Open(groupMap, openInputs, []T{zeta, zetaOmega}, v, u, fqSponge.Digest(), rng)
	if err != nil {
		return nil, err
	}

	proof := &ProverProof[T, G, O]{
		Commitments: Commitments[G]{
			W: commitmentsUnshifted(wCommits),
			Z: zCommit.Unshifted,
			T: flattenCommitments(tCommits),
		},
		Proof:          openingProof,
		Evals:          [2]expr.ProofEvaluations[[]T]{evalsAtZeta, evalsAtZetaOmega},
		FtEval1:        ftEval1,
		Public:         public,
		PrevChallenges: prevChallenges,
	}
	log.Debug().Msg("prover: proof complete")
	return proof, nil
}

// computeGrandProduct builds the PLONK permutation-aggregation evaluations
// on H: z[0]=1, z[j+1] accumulates the ratio of the id term over the sigma
// term, via one batch inversion over all n denominators. The id term reuses
// the exact same UnnormalizedLagrangeEvals(l01, 0, D1, ...) vector
// permConstraint evaluates symbolically via its "sid" node (zero on every H
// row except row 0), so the scalar recurrence computed here and the symbolic
// recurrence the quotient division checks agree row for row — required for
// DivideByVanishing to land on a zero remainder. Returns ErrProofCreation if
// the closing step (the implicit z[n]) does not land back on 1.
func computeGrandProduct[T any, PT field.Element[T], G any](cs *ConstraintSystem[T, PT, G], witness [][]T, beta, gamma, omega, l01 T) ([]T, error) {
	n := int(cs.Domains.H.Size)
	z := make([]T, n)
	z[0] = field.One[T, PT]()

	sidOnH := expr.UnnormalizedLagrangeEvals[T, PT](l01, 0, expr.D1, uint64(n), omega, omega)

	numerators := make([]T, n)
	denominators := make([]T, n)
	for j := 0; j < n; j++ {
		w0 := witness[0][j]
		numTerm := field.Add[T, PT](field.Add[T, PT](w0, field.Mul[T, PT](beta, sidOnH[j])), gamma)
		sigmaVal := cs.Sigma[0].EvalsH[j]
		denTerm := field.Add[T, PT](field.Add[T, PT](w0, field.Mul[T, PT](beta, sigmaVal)), gamma)
		numerators[j] = numTerm
		denominators[j] = denTerm
	}
	field.BatchInvert[T, PT](denominators)

	acc := field.One[T, PT]()
	for j := 0; j < n; j++ {
		acc = field.Mul[T, PT](acc, field.Mul[T, PT](numerators[j], denominators[j]))
		if j+1 < n {
			z[j+1] = acc
		}
	}
	if !PT(&acc).IsOne() {
		return nil, ErrProofCreation
	}
	return z, nil
}

func buildProofEvaluations[T any, PT field.Element[T], G any](cs *ConstraintSystem[T, PT, G], w []Polynomial[T, PT], z Polynomial[T, PT], point T) expr.ProofEvaluations[[]T] {
	out := expr.ProofEvaluations[[]T]{
		W: make([][]T, len(w)),
		S: make([][]T, len(cs.Sigma)),
		Z: z.EvalChunked(point, cs.MaxPolySize),
	}
	for i, wp := range w {
		out.W[i] = wp.EvalChunked(point, cs.MaxPolySize)
	}
	for i, s := range cs.Sigma {
		out.S[i] = s.Poly.EvalChunked(point, cs.MaxPolySize)
	}
	return out
}

// foldProofEvaluations folds each column's chunk vector down to a single
// scalar via Horner's rule at zetaPowChunk, needed before scalar
// Expr.Evaluate can read a ProofEvaluations[F].
func foldProofEvaluations[T any, PT field.Element[T]](e expr.ProofEvaluations[[]T], zetaPowChunk T) expr.ProofEvaluations[T] {
	fold := func(chunks []T) T {
		acc := field.Zero[T, PT]()
		for i := len(chunks) - 1; i >= 0; i-- {
			acc = field.Add[T, PT](chunks[i], field.Mul[T, PT](acc, zetaPowChunk))
		}
		return acc
	}
	out := expr.ProofEvaluations[T]{W: make([]T, len(e.W)), S: make([]T, len(e.S))}
	for i, c := range e.W {
		out.W[i] = fold(c)
	}
	for i, c := range e.S {
		out.S[i] = fold(c)
	}
	out.Z = fold(e.Z)
	return out
}

func zkPolynomialAtOrZero[T any, PT field.Element[T], G any](cs *ConstraintSystem[T, PT, G]) func(T) T {
	if cs.ZkPolynomialAt != nil {
		return cs.ZkPolynomialAt
	}
	return func(T) T { return field.Zero[T, PT]() }
}

// bPolyCoefficients folds a sequence of recursion challenges into the
// coefficient vector of the corresponding "b" polynomial:
// coefficients[i] = product over bits of chals of (chals[k] or 1)
// depending on bit k of i, the standard multilinear-fold expansion.
func bPolyCoefficients[T any, PT field.Element[T]](chals []T) []T {
	if len(chals) == 0 {
		return []T{field.One[T, PT]()}
	}
	coeffs := []T{field.One[T, PT]()}
	for _, c := range chals {
		next := make([]T, len(coeffs)*2)
		copy(next, coeffs)
		for i, v := range coeffs {
			next[len(coeffs)+i] = field.Mul[T, PT](v, c)
		}
		coeffs = next
	}
	return coeffs
}

func commitmentsUnshifted[G any](cs []Commitment[G]) [][]G {
	out := make([][]G, len(cs))
	for i, c := range cs {
		out[i] = c.Unshifted
	}
	return out
}

func flattenCommitments[G any](cs []Commitment[G]) []G {
	var out []G
	for _, c := range cs {
		out = append(out, c.Unshifted...)
	}
	return out
}
