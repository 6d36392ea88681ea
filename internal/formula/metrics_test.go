package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeDivide(t *testing.T) {
	assert.Equal(t, 2.0, SafeDivide(10, 5))
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 0.0, SafeDivide(0, 0))
	assert.Equal(t, -2.5, SafeDivide(-5, 2))
}

func TestCashConversionCycle(t *testing.T) {
	assert.Equal(t, 35.0, CashConversionCycle(30, 20, 15))
	assert.Equal(t, -10.0, CashConversionCycle(10, 10, 30))
}

func TestWorkingCapitalNeed(t *testing.T) {
	assert.Equal(t, 5000.0, WorkingCapitalNeed(4000, 3000, 2000))
}

func TestPaybackCAC(t *testing.T) {
	assert.Equal(t, 3.0, PaybackCAC(300, 100))

	// Margem abaixo de 1 é tratada como 1: o resultado nunca explode.
	assert.Equal(t, 300.0, PaybackCAC(300, 0))
	assert.Equal(t, 300.0, PaybackCAC(300, 0.5))
	assert.False(t, math.IsInf(PaybackCAC(300, 0), 0))
}

func TestNetLTV(t *testing.T) {
	// (200 x 4 x 0.8) - (100 + 180) = 640 - 280 = 360
	assert.Equal(t, 360.0, NetLTV(200, 4, 0.8, 100, 180))
}

func TestNetRevenueRetention(t *testing.T) {
	assert.Equal(t, 110.0, NetRevenueRetention(1100, 1000))

	// Receita anterior zero usa piso 1 em vez de dividir por zero.
	assert.Equal(t, 50000.0, NetRevenueRetention(500, 0))
}

func TestNetPromoterScore(t *testing.T) {
	assert.Equal(t, 40.0, NetPromoterScore(7, 3, 10))
	assert.Equal(t, 0.0, NetPromoterScore(0, 0, 0))
}

func TestBreakEvenVolume(t *testing.T) {
	assert.Equal(t, 50.0, BreakEvenVolume(7500, 150))
	assert.Equal(t, 7500.0, BreakEvenVolume(7500, 0))
}

func TestMarginPerMinute(t *testing.T) {
	assert.Equal(t, 2.0, MarginPerMinute(150, 30, 60))
	assert.Equal(t, 0.0, MarginPerMinute(150, 30, 0))
}

func TestOpportunityCost(t *testing.T) {
	assert.Equal(t, 450.0, OpportunityCost(3, 150))
	assert.Equal(t, 0.0, OpportunityCost(0, 150))
}

func TestRevPAS(t *testing.T) {
	assert.Equal(t, 100.0, RevPAS(1000, 10))
	assert.Equal(t, 0.0, RevPAS(1000, 0))
}

func TestNormalizedEBITDA(t *testing.T) {
	assert.Equal(t, 25000.0, NormalizedEBITDA(20000, 15000, 10000))
}
