package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistantGreeting(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("Hola, ¿qué puedes hacer?")
	assert.Contains(t, answer, "asistente")
}

func TestAssistantEquipmentLookup(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("¿Cómo está la EXC-001?")
	assert.Contains(t, answer, "EXC-001")
	assert.Contains(t, answer, "Excavadora")
	assert.Contains(t, answer, "Caterpillar")
}

func TestAssistantEquipmentNotFound(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("dame el estado de la GRU-999")
	assert.Contains(t, answer, "GRU-999")
	assert.Contains(t, answer, "No encontré")
}

func TestAssistantFirstMatchWins(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	// La pregunta menciona un código y también mantenimiento: gana la
	// regla del código porque va antes en la lista
	answer := as.Answer("¿cuándo toca mantenimiento de la CF-002?")
	assert.Contains(t, answer, "CF-002")
	assert.Contains(t, answer, "Komatsu")
}

func TestAssistantMaintenanceKeyword(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("resumen de mantenimiento")
	assert.True(t, strings.Contains(strings.ToLower(answer), "mantenimiento") ||
		strings.Contains(strings.ToLower(answer), "servicio"), "respuesta: %s", answer)
}

func TestAssistantFuelKeyword(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("¿cuánto combustible queda en el tanque?")
	assert.Contains(t, strings.ToLower(answer), "galones")
}

func TestAssistantDefaultFallback(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	answer := as.Answer("xyzzy")
	assert.Contains(t, answer, "No entendí")
}

func TestAssistantCaseInsensitive(t *testing.T) {
	as := NewAssistantService(NewRepository(nil))

	// La entrada se normaliza a minúsculas antes de evaluar las reglas
	assert.Equal(t, as.Answer("SOAT"), as.Answer("soat"))
}
