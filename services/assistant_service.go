package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"backend_maquinaria/models"
)

// AssistantService responde las preguntas frecuentes del widget del panel.
// Es una lista ordenada de pares (predicado, respuesta): gana la primera
// regla que coincide con la entrada en minúsculas y si ninguna coincide se
// devuelve la respuesta por defecto.
type AssistantService struct {
	repo  *Repository
	rules []assistantRule
}

type assistantRule struct {
	matches func(input string) bool
	respond func(input string) string
}

var equipmentCodePattern = regexp.MustCompile(`\b([a-z]{2,4})-(\d{3})\b`)

// NewAssistantService crea el asistente con su tabla de reglas
func NewAssistantService(repo *Repository) *AssistantService {
	as := &AssistantService{repo: repo}

	as.rules = []assistantRule{
		{
			matches: containsAny("hola", "buenos dias", "buenos días", "buenas tardes", "buenas noches"),
			respond: func(string) string {
				return "¡Hola! Soy el asistente de MAQUINARIA PRO. Pregúntame por una unidad (por ejemplo EXC-001), mantenimientos, combustible, documentos o filtros."
			},
		},
		{
			matches: func(input string) bool { return equipmentCodePattern.MatchString(input) },
			respond: as.respondEquipment,
		},
		{
			matches: containsAny("mantenimiento", "servicio", "horometro", "horómetro"),
			respond: as.respondMaintenance,
		},
		{
			matches: containsAny("combustible", "diesel", "diésel", "petroleo", "petróleo", "tanque", "galones"),
			respond: as.respondFuel,
		},
		{
			matches: containsAny("soat", "citv", "documento", "seguro", "revision tecnica", "revisión técnica"),
			respond: as.respondDocuments,
		},
		{
			matches: containsAny("filtro", "repuesto", "numero de parte", "número de parte"),
			respond: as.respondFilters,
		},
	}

	return as
}

func containsAny(keywords ...string) func(string) bool {
	return func(input string) bool {
		for _, kw := range keywords {
			if strings.Contains(input, kw) {
				return true
			}
		}
		return false
	}
}

// Answer evalúa las reglas en orden sobre la entrada en minúsculas
func (as *AssistantService) Answer(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, rule := range as.rules {
		if rule.matches(normalized) {
			return rule.respond(normalized)
		}
	}

	return "No entendí la consulta. Puedo ayudarte con unidades, mantenimientos, combustible, documentos SOAT/CITV y filtros."
}

func (as *AssistantService) respondEquipment(input string) string {
	code := strings.ToUpper(equipmentCodePattern.FindString(input))

	equipment, err := as.repo.ListEquipment(EquipmentFilters{})
	if err != nil {
		return "Ahora mismo no puedo consultar el inventario. Inténtalo de nuevo en un momento."
	}

	for _, e := range equipment {
		if e.Code == code {
			return fmt.Sprintf("%s: %s %s %s (%d), estado %s, horómetro %s h, ubicada en %s.",
				e.Code, e.Type, e.Brand, e.Model, e.Year, e.Status,
				e.HoursCurrent.StringFixed(1), e.Location)
		}
	}

	return fmt.Sprintf("No encontré la unidad %s en el inventario.", code)
}

func (as *AssistantService) respondMaintenance(string) string {
	records, err := as.repo.ListMaintenance()
	if err != nil {
		return "Ahora mismo no puedo consultar el programa de mantenimiento."
	}

	overdue, urgent := 0, 0
	for _, m := range records {
		switch m.AlertState() {
		case models.AlertOverdue:
			overdue++
		case models.AlertUrgent:
			urgent++
		}
	}

	return fmt.Sprintf("El programa de mantenimiento tiene %d unidades VENCIDAS y %d URGENTES. Los servicios preventivos van cada %d horas.",
		overdue, urgent, models.PreventiveIntervalHours)
}

func (as *AssistantService) respondFuel(string) string {
	movements, err := as.repo.ListFuelMovements()
	if err != nil {
		return "Ahora mismo no puedo consultar el libro de combustible."
	}

	summary := models.SummarizeFuel(movements)
	return fmt.Sprintf("El tanque tiene %s galones (ingresos %s, salidas %s). Gasto acumulado: S/ %s.",
		summary.TankStock.StringFixed(2), summary.TotalInflow.StringFixed(2),
		summary.TotalOutflow.StringFixed(2), summary.TotalSpent.StringFixed(2))
}

func (as *AssistantService) respondDocuments(string) string {
	docs, err := as.repo.ListDocuments("")
	if err != nil {
		return "Ahora mismo no puedo consultar los documentos."
	}

	today := time.Now()
	expired, thisWeek := 0, 0
	for _, doc := range docs {
		switch doc.StatusAt(today).Action {
		case models.DocActionOverdue:
			expired++
		case models.DocActionRenewWeek:
			thisWeek++
		}
	}

	return fmt.Sprintf("Documentos SOAT/CITV: %d vencidos y %d por renovar esta semana. Revisa el tablero de vencimientos para el detalle.",
		expired, thisWeek)
}

func (as *AssistantService) respondFilters(string) string {
	kits, err := as.repo.ListFilterKits(nil)
	if err != nil {
		return "Ahora mismo no puedo consultar el catálogo de filtros."
	}

	lines := models.ConsolidatePurchaseList(kits)
	return fmt.Sprintf("El catálogo tiene kits de filtros para %d unidades, con %d números de parte distintos. Puedes generar la lista de compra consolidada desde la página de filtros.",
		len(kits), len(lines))
}
