package calculator

import (
	"context"
	"testing"

	"growthcalc/internal/growth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
	std growth.Standard
}

func (m *MockBackend) Standard() growth.Standard { return m.std }

func (m *MockBackend) Publishes(metric growth.Metric) bool {
	args := m.Called(metric)
	return args.Bool(0)
}

func (m *MockBackend) Covers(metric growth.Metric, ageMonths float64) bool {
	args := m.Called(metric, ageMonths)
	return args.Bool(0)
}

func (m *MockBackend) ZScore(ctx context.Context, meas growth.Measurement) (float64, error) {
	args := m.Called(ctx, meas)
	return args.Get(0).(float64), args.Error(1)
}

// fullCoverage stubs a backend that publishes everything at every age.
func fullCoverage(std growth.Standard) *MockBackend {
	b := &MockBackend{std: std}
	b.On("Publishes", mock.Anything).Return(true)
	b.On("Covers", mock.Anything, mock.Anything).Return(true)
	return b
}

func TestSelectorAutoThreshold(t *testing.T) {
	sel := NewSelector(fullCoverage(growth.StandardCDC), fullCoverage(growth.StandardWHO))

	cases := []struct {
		age  float64
		want growth.Standard
	}{
		{0, growth.StandardWHO},
		{24, growth.StandardWHO},
		{59.9, growth.StandardWHO},
		{60, growth.StandardCDC},
		{60.1, growth.StandardCDC},
		{240, growth.StandardCDC},
	}
	for _, tc := range cases {
		std, err := sel.Select(growth.MetricWeightForAge, tc.age, growth.StandardAuto)
		require.NoError(t, err)
		assert.Equal(t, tc.want, std, "age %g", tc.age)
	}
}

func TestSelectorAutoFallback(t *testing.T) {
	t.Run("Primary Lacks Age Coverage", func(t *testing.T) {
		// Head circumference at 48 months: WHO is the policy pick but only
		// CDC-style coverage exists here, so AUTO falls through.
		who := &MockBackend{std: growth.StandardWHO}
		who.On("Publishes", mock.Anything).Return(true)
		who.On("Covers", mock.Anything, mock.Anything).Return(false)
		cdc := fullCoverage(growth.StandardCDC)

		std, err := NewSelector(cdc, who).Select(growth.MetricHeadCircumference, 48, growth.StandardAuto)
		require.NoError(t, err)
		assert.Equal(t, growth.StandardCDC, std)
	})

	t.Run("Primary Does Not Publish Metric", func(t *testing.T) {
		// Weight-for-stature at 70 months: CDC is the policy pick but only
		// WHO publishes the metric.
		cdc := &MockBackend{std: growth.StandardCDC}
		cdc.On("Publishes", mock.Anything).Return(false)
		cdc.On("Covers", mock.Anything, mock.Anything).Return(false)
		who := fullCoverage(growth.StandardWHO)

		std, err := NewSelector(cdc, who).Select(growth.MetricWeightForStature, 70, growth.StandardAuto)
		require.NoError(t, err)
		assert.Equal(t, growth.StandardWHO, std)
	})

	t.Run("Neither Publishes", func(t *testing.T) {
		cdc := &MockBackend{std: growth.StandardCDC}
		cdc.On("Publishes", mock.Anything).Return(false)
		cdc.On("Covers", mock.Anything, mock.Anything).Return(false)
		who := &MockBackend{std: growth.StandardWHO}
		who.On("Publishes", mock.Anything).Return(false)
		who.On("Covers", mock.Anything, mock.Anything).Return(false)

		_, err := NewSelector(cdc, who).Select(growth.MetricWeightForStature, 70, growth.StandardAuto)
		assert.ErrorIs(t, err, growth.ErrUnsupportedMetric)
	})

	t.Run("Published But Uncovered Everywhere", func(t *testing.T) {
		cdc := &MockBackend{std: growth.StandardCDC}
		cdc.On("Publishes", mock.Anything).Return(true)
		cdc.On("Covers", mock.Anything, mock.Anything).Return(false)
		who := &MockBackend{std: growth.StandardWHO}
		who.On("Publishes", mock.Anything).Return(true)
		who.On("Covers", mock.Anything, mock.Anything).Return(false)

		_, err := NewSelector(cdc, who).Select(growth.MetricWeightForAge, 500, growth.StandardAuto)
		assert.ErrorIs(t, err, growth.ErrUnsupportedAge)
	})
}

func TestSelectorExplicit(t *testing.T) {
	t.Run("Explicit Pick Is Honored", func(t *testing.T) {
		sel := NewSelector(fullCoverage(growth.StandardCDC), fullCoverage(growth.StandardWHO))

		// Explicit CDC at an age AUTO would give to WHO.
		std, err := sel.Select(growth.MetricWeightForAge, 30, growth.StandardCDC)
		require.NoError(t, err)
		assert.Equal(t, growth.StandardCDC, std)

		std, err = sel.Select(growth.MetricWeightForAge, 120, growth.StandardWHO)
		require.NoError(t, err)
		assert.Equal(t, growth.StandardWHO, std)
	})

	t.Run("Explicit Unpublished Metric", func(t *testing.T) {
		cdc := &MockBackend{std: growth.StandardCDC}
		cdc.On("Publishes", growth.MetricWeightForStature).Return(false)
		sel := NewSelector(cdc, fullCoverage(growth.StandardWHO))

		_, err := sel.Select(growth.MetricWeightForStature, 24, growth.StandardCDC)
		assert.ErrorIs(t, err, growth.ErrUnsupportedMetric)
	})

	t.Run("Explicit Uncovered Age Never Falls Back", func(t *testing.T) {
		cdc := &MockBackend{std: growth.StandardCDC}
		cdc.On("Publishes", mock.Anything).Return(true)
		cdc.On("Covers", growth.MetricWeightForAge, 10.0).Return(false)
		sel := NewSelector(cdc, fullCoverage(growth.StandardWHO))

		_, err := sel.Select(growth.MetricWeightForAge, 10, growth.StandardCDC)
		assert.ErrorIs(t, err, growth.ErrUnsupportedAge)
	})

	t.Run("Unknown Standard", func(t *testing.T) {
		sel := NewSelector(fullCoverage(growth.StandardCDC), fullCoverage(growth.StandardWHO))
		_, err := sel.Select(growth.MetricWeightForAge, 24, growth.Standard("NHANES"))
		assert.Error(t, err)
	})
}
