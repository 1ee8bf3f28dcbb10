package ml

import (
	"math/rand"
)

const (
	defaultAggressiveness = 1.0
	defaultMaxIter        = 50
	defaultTrainSeed      = 42
)

// PassiveAggressive is a margin-based linear online classifier (PA-I).
// Each misclassified or low-margin example triggers the smallest weight
// update that restores a unit margin, capped by the aggressiveness
// parameter. Training cost is bounded by MaxIter full passes; no
// convergence check is performed.
type PassiveAggressive struct {
	Weights        []float64
	Bias           float64
	Aggressiveness float64
	MaxIter        int
	Seed           int64
}

// NewPassiveAggressive returns an untrained classifier with the default
// hyperparameters.
func NewPassiveAggressive() *PassiveAggressive {
	return &PassiveAggressive{
		Aggressiveness: defaultAggressiveness,
		MaxIter:        defaultMaxIter,
		Seed:           defaultTrainSeed,
	}
}

// Fit trains on vectors with labels in {0,1}. The per-epoch shuffle is
// driven by the fixed Seed so repeated runs over the same corpus produce
// identical weights.
func (p *PassiveAggressive) Fit(vecs []SparseVector, labels []int, dimensions int) {
	p.Weights = make([]float64, dimensions)
	p.Bias = 0

	if p.MaxIter <= 0 {
		p.MaxIter = defaultMaxIter
	}
	if p.Aggressiveness <= 0 {
		p.Aggressiveness = defaultAggressiveness
	}

	rng := rand.New(rand.NewSource(p.Seed))
	order := make([]int, len(vecs))
	for i := range order {
		order[i] = i
	}

	for iter := 0; iter < p.MaxIter; iter++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, i := range order {
			p.update(vecs[i], signedTarget(labels[i]))
		}
	}
}

func (p *PassiveAggressive) update(x SparseVector, target float64) {
	margin := target * p.Decision(x)
	loss := 1 - margin
	if loss <= 0 {
		return
	}

	// +1 accounts for the implicit intercept feature.
	sqnorm := x.SquaredNorm() + 1
	tau := loss / sqnorm
	if tau > p.Aggressiveness {
		tau = p.Aggressiveness
	}

	step := tau * target
	for i, idx := range x.Indices {
		p.Weights[idx] += step * x.Values[i]
	}
	p.Bias += step
}

// Decision returns the signed distance of x from the separating hyperplane.
func (p *PassiveAggressive) Decision(x SparseVector) float64 {
	return x.Dot(p.Weights) + p.Bias
}

// Predict returns the {0,1} label for x.
func (p *PassiveAggressive) Predict(x SparseVector) int {
	if p.Decision(x) > 0 {
		return 1
	}
	return 0
}

// Accuracy computes the fraction of correct predictions over a labeled set.
func (p *PassiveAggressive) Accuracy(vecs []SparseVector, labels []int) float64 {
	if len(vecs) == 0 {
		return 0
	}
	correct := 0
	for i, vec := range vecs {
		if p.Predict(vec) == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(vecs))
}

func signedTarget(label int) float64 {
	if label == 1 {
		return 1
	}
	return -1
}
