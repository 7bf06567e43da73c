package service

import (
	"errors"
	"math"
)

// linearModel is an ordinary least squares fit over standardized features,
// solved by Gaussian elimination on the normal equations.
type linearModel struct {
	coefficients []float64
	intercept    float64
	featureMean  []float64
	featureStd   []float64
}

var errSingularMatrix = errors.New("normal equations are singular")

// fitLinearModel standardizes the feature columns with the training split's
// statistics and fits y = Xb + c.
func fitLinearModel(features [][]float64, targets []float64) (*linearModel, error) {
	n := len(features)
	if n == 0 || n != len(targets) {
		return nil, errors.New("empty or mismatched training data")
	}
	p := len(features[0])

	model := &linearModel{
		coefficients: make([]float64, p),
		featureMean:  make([]float64, p),
		featureStd:   make([]float64, p),
	}

	for j := 0; j < p; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += features[i][j]
		}
		model.featureMean[j] = sum / float64(n)

		variance := 0.0
		for i := 0; i < n; i++ {
			d := features[i][j] - model.featureMean[j]
			variance += d * d
		}
		model.featureStd[j] = math.Sqrt(variance / float64(n))
		if model.featureStd[j] == 0 {
			model.featureStd[j] = 1
		}
	}

	scaled := make([][]float64, n)
	for i := 0; i < n; i++ {
		scaled[i] = model.scale(features[i])
	}

	// Augmented design matrix with an intercept column, normal equations
	// (X'X)b = X'y solved in place.
	dim := p + 1
	xtx := make([][]float64, dim)
	xty := make([]float64, dim)
	for a := 0; a < dim; a++ {
		xtx[a] = make([]float64, dim)
	}
	for i := 0; i < n; i++ {
		row := append([]float64{1}, scaled[i]...)
		for a := 0; a < dim; a++ {
			xty[a] += row[a] * targets[i]
			for b := 0; b < dim; b++ {
				xtx[a][b] += row[a] * row[b]
			}
		}
	}

	solution, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return nil, err
	}

	model.intercept = solution[0]
	copy(model.coefficients, solution[1:])
	return model, nil
}

func (m *linearModel) predict(features []float64) float64 {
	scaled := m.scale(features)
	value := m.intercept
	for j, coefficient := range m.coefficients {
		value += coefficient * scaled[j]
	}
	return value
}

func (m *linearModel) scale(features []float64) []float64 {
	scaled := make([]float64, len(features))
	for j := range features {
		scaled[j] = (features[j] - m.featureMean[j]) / m.featureStd[j]
	}
	return scaled
}

// rSquared is the coefficient of determination over a held-out split.
func rSquared(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	mean := 0.0
	for _, value := range actual {
		mean += value
	}
	mean /= float64(len(actual))

	ssRes := 0.0
	ssTot := 0.0
	for i := range actual {
		ssRes += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
		ssTot += (actual[i] - mean) * (actual[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	// Gaussian elimination with partial pivoting.
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errSingularMatrix
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	solution := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for col := row + 1; col < n; col++ {
			sum -= a[row][col] * solution[col]
		}
		solution[row] = sum / a[row][row]
	}
	return solution, nil
}
