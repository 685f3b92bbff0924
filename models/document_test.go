package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExpiry(t *testing.T) {
	cases := []struct {
		name     string
		days     int
		action   string
		color    string
	}{
		{"muy vencido", -30, DocActionOverdue, DocColorDarkRed},
		{"vencido ayer", -1, DocActionOverdue, DocColorDarkRed},
		{"vence hoy no es vencido", 0, DocActionRenewWeek, DocColorRed},
		{"dentro de la semana", 7, DocActionRenewWeek, DocColorRed},
		{"pasada la semana", 8, DocActionRenewSoon, DocColorAmber},
		{"renovar pronto en el borde", 15, DocActionRenewSoon, DocColorAmber},
		{"programar desde el 16", 16, DocActionSchedule, DocColorBlue},
		{"programar en el borde", 30, DocActionSchedule, DocColorBlue},
		{"en regla desde el 31", 31, DocActionInOrder, DocColorGreen},
		{"en regla holgado", 365, DocActionInOrder, DocColorGreen},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := ClassifyExpiry(tc.days)
			assert.Equal(t, tc.action, status.Action)
			assert.Equal(t, tc.color, status.Color)
			assert.Equal(t, tc.days, status.DaysRemaining)
		})
	}
}

func TestDaysRemainingAtIgnoresTimeOfDay(t *testing.T) {
	// El cálculo es por días calendario: la hora no importa
	today := time.Date(2025, 3, 10, 23, 45, 0, 0, time.Local)
	doc := Document{ExpiresAt: time.Date(2025, 3, 15, 1, 5, 0, 0, time.Local)}

	assert.Equal(t, 5, doc.DaysRemainingAt(today))
}

func TestDaysRemainingAtSameDay(t *testing.T) {
	today := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	doc := Document{ExpiresAt: time.Date(2025, 3, 10, 20, 0, 0, 0, time.Local)}

	assert.Equal(t, 0, doc.DaysRemainingAt(today))
	assert.Equal(t, DocActionRenewWeek, doc.StatusAt(today).Action)
}

func TestRenewalDefault(t *testing.T) {
	doc := Document{ExpiresAt: time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)}
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local), doc.RenewalDefault())
}

func TestRenewalDefaultLeapDay(t *testing.T) {
	// AddDate normaliza el 29 de febrero al 1 de marzo del año siguiente
	doc := Document{ExpiresAt: time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)}
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), doc.RenewalDefault())
}

func TestDaysRemainingAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("zona horaria no disponible: " + err.Error())
	}

	// El 8 de marzo de 2026 ese huso adelanta una hora: entre las dos
	// medianoches locales hay 47 horas, pero siguen siendo 2 días
	doc := Document{ExpiresAt: time.Date(2026, 3, 9, 0, 0, 0, 0, loc)}
	today := time.Date(2026, 3, 7, 10, 0, 0, 0, loc)
	assert.Equal(t, 2, doc.DaysRemainingAt(today))

	// Y al volver el horario estándar el intervalo es de 25 horas: 1 día
	doc = Document{ExpiresAt: time.Date(2026, 11, 2, 0, 0, 0, 0, loc)}
	today = time.Date(2026, 11, 1, 0, 30, 0, 0, loc)
	assert.Equal(t, 1, doc.DaysRemainingAt(today))
}
