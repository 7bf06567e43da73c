package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearModelRecoversLinearRelationship(t *testing.T) {
	features := [][]float64{}
	targets := []float64{}
	for i := 1; i <= 12; i++ {
		x1 := float64(i)
		x2 := float64(i%5) + 1
		features = append(features, []float64{x1, x2})
		targets = append(targets, 2*x1-1.5*x2+3)
	}

	model, err := fitLinearModel(features, targets)
	require.NoError(t, err)

	assert.InDelta(t, 2*13.0-1.5*4.0+3, model.predict([]float64{13, 4}), 1e-6)
	assert.InDelta(t, 3.0, model.predict([]float64{0, 0}), 1e-6)
}

func TestFitLinearModelRejectsConstantFeature(t *testing.T) {
	features := [][]float64{}
	targets := []float64{}
	for i := 0; i < 10; i++ {
		features = append(features, []float64{5, 5})
		targets = append(targets, float64(i))
	}

	_, err := fitLinearModel(features, targets)
	assert.Error(t, err, "A feature matrix without variation cannot be solved")
}

func TestRSquared(t *testing.T) {
	actual := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, rSquared(actual, actual), 1e-9)

	mean := []float64{3, 3, 3, 3, 3}
	assert.InDelta(t, 0.0, rSquared(actual, mean), 1e-9)
}
