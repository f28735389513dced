package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Revenue = UnitPrice*Quantity - DiscountAmount.
func TestSale_ComputeRevenue(t *testing.T) {
	s := &Sale{
		Quantity:       10,
		UnitPrice:      decimal.RequireFromString("120.50"),
		DiscountAmount: decimal.RequireFromString("50.00"),
	}
	s.ComputeRevenue()
	assert.True(t, s.Revenue.Equal(decimal.RequireFromString("1155.00")),
		"revenue debe ser 120.50*10 - 50.00 = 1155.00, fue %s", s.Revenue)
}

// La derivación es idempotente: recalcular N veces no altera el resultado.
func TestSale_ComputeRevenue_Idempotente(t *testing.T) {
	s := &Sale{
		Quantity:       3,
		UnitPrice:      decimal.RequireFromString("99.99"),
		DiscountAmount: decimal.RequireFromString("9.99"),
	}
	s.ComputeRevenue()
	first := s.Revenue
	for i := 0; i < 5; i++ {
		s.ComputeRevenue()
	}
	assert.True(t, s.Revenue.Equal(first), "recalcular no debe cambiar el revenue")
}

func TestSale_ComputeRevenue_SinDescuento(t *testing.T) {
	s := &Sale{Quantity: 4, UnitPrice: decimal.NewFromInt(25)}
	s.ComputeRevenue()
	assert.True(t, s.Revenue.Equal(decimal.NewFromInt(100)))
}
