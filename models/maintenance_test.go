package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyMaintenance(t *testing.T) {
	cases := []struct {
		name      string
		remaining string
		expected  string
	}{
		{"muy vencido", "-120", AlertOverdue},
		{"apenas vencido", "-0.1", AlertOverdue},
		{"cero es vencido", "0", AlertOverdue},
		{"justo encima de cero", "0.1", AlertUrgent},
		{"urgente en el umbral", "50", AlertUrgent},
		{"proximo justo pasado el umbral", "50.1", AlertUpcoming},
		{"proximo en el umbral", "100", AlertUpcoming},
		{"en regla justo pasado el umbral", "100.1", AlertInOrder},
		{"en regla holgado", "250", AlertInOrder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remaining, err := decimal.NewFromString(tc.remaining)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ClassifyMaintenance(remaining))
		})
	}
}

func TestHoursRemaining(t *testing.T) {
	record := Maintenance{
		HoursNextDue: decimal.NewFromInt(7400),
		HoursCurrent: decimal.NewFromInt(7420),
	}
	assert.True(t, record.HoursRemaining().Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, AlertOverdue, record.AlertState())
}

func TestRegisterService(t *testing.T) {
	record := Maintenance{
		HoursLastService: decimal.NewFromInt(7150),
		HoursNextDue:     decimal.NewFromInt(7400),
		HoursCurrent:     decimal.NewFromInt(7420),
	}

	record.RegisterService()

	// La lectura actual pasa a ser la del último servicio y el próximo
	// queda un intervalo completo adelante
	assert.True(t, record.HoursLastService.Equal(decimal.NewFromInt(7420)))
	assert.True(t, record.HoursNextDue.Equal(decimal.NewFromInt(7670)))
	assert.True(t, record.HoursCurrent.Equal(decimal.NewFromInt(7420)))
	assert.Equal(t, AlertInOrder, record.AlertState())
}

func TestRegisterServiceWithFractionalReading(t *testing.T) {
	current, _ := decimal.NewFromString("1234.5")
	record := Maintenance{HoursCurrent: current}

	record.RegisterService()

	expected, _ := decimal.NewFromString("1484.5")
	assert.True(t, record.HoursNextDue.Equal(expected))
}
