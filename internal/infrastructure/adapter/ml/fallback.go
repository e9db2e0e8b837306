package ml

import (
	"math"
	"math/rand"
	"sort"
)

// Fallback training parameters
const (
	FallbackVersion  = "fallback-v1"
	fallbackSeed     = 42
	fallbackSamples  = 1000
	fallbackEpochs   = 1500
	fallbackRate     = 0.5
	fraudPercentile  = 0.90
	syntheticMeanAmt = 100.0
)

// TrainFallback fits a logistic regression on deterministic synthetic data.
// A transaction is labelled fraud when its amount is above the 90th percentile.
// The same order always yields the same artifact.
func TrainFallback(order []string) *Artifact {
	rng := rand.New(rand.NewSource(fallbackSeed))
	vocabulary := DefaultVocabulary()

	merchants := sortedKeys(vocabulary.Merchants)
	categories := sortedKeys(vocabulary.Categories)

	raw := make([][]float64, fallbackSamples)
	amounts := make([]float64, fallbackSamples)
	for i := range raw {
		sample := map[string]float64{
			FeatureAmount:   rng.ExpFloat64() * syntheticMeanAmt,
			FeatureMerchant: float64(vocabulary.Merchants[merchants[rng.Intn(len(merchants))]]),
			FeatureCategory: float64(vocabulary.Categories[categories[rng.Intn(len(categories))]]),
			FeatureHour:     float64(rng.Intn(24)),
			FeatureUserAge:  float64(18 + rng.Intn(62)),
		}
		row := make([]float64, len(order))
		for j, name := range order {
			row[j] = sample[name]
		}
		raw[i] = row
		amounts[i] = sample[FeatureAmount]
	}

	cut := percentile(amounts, fraudPercentile)
	labels := make([]float64, fallbackSamples)
	for i, amount := range amounts {
		if amount > cut {
			labels[i] = 1
		}
	}

	mean, scale := standardise(raw)
	intercept, coefficients := gradientDescent(raw, labels, mean, scale)

	threshold := DefaultThreshold
	return &Artifact{
		Version:      FallbackVersion,
		Kind:         KindLogisticRegression,
		Threshold:    &threshold,
		FeatureOrder: append([]string(nil), order...),
		Vocabulary:   vocabulary,
		Scaler:       &Scaler{Mean: mean, Scale: scale},
		Intercept:    intercept,
		Coefficients: coefficients,
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// percentile uses linear interpolation between closest ranks
func percentile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

// standardise returns per-column mean and population standard deviation;
// constant columns get scale 1
func standardise(rows [][]float64) (mean, scale []float64) {
	n := float64(len(rows))
	cols := len(rows[0])
	mean = make([]float64, cols)
	scale = make([]float64, cols)

	for _, row := range rows {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}
	return mean, scale
}

// gradientDescent minimises mean log loss with full-batch updates
func gradientDescent(rows [][]float64, labels, mean, scale []float64) (float64, []float64) {
	n := float64(len(rows))
	cols := len(mean)

	x := make([][]float64, len(rows))
	for i, row := range rows {
		x[i] = make([]float64, cols)
		for j, v := range row {
			x[i][j] = (v - mean[j]) / scale[j]
		}
	}

	weights := make([]float64, cols)
	bias := 0.0
	grad := make([]float64, cols)

	for epoch := 0; epoch < fallbackEpochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i, xi := range x {
			z := bias
			for j, v := range xi {
				z += weights[j] * v
			}
			diff := sigmoid(z) - labels[i]
			gradBias += diff
			for j, v := range xi {
				grad[j] += diff * v
			}
		}

		bias -= fallbackRate * gradBias / n
		for j := range weights {
			weights[j] -= fallbackRate * grad[j] / n
		}
	}

	return bias, weights
}
