package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"backend_maquinaria/models"

	"github.com/robfig/cron/v3"
)

// AlertService recalcula los estados derivados de toda la flota y reparte
// los avisos. Los estados nunca se persisten: este servicio los evalúa al
// momento de cada escaneo o consulta.
type AlertService struct {
	repo     *Repository
	telegram *TelegramClient
	cron     *cron.Cron
	logger   *log.Logger
}

// NewAlertService crea el servicio de alertas. El cliente de Telegram
// puede ser nil: en ese caso el escaneo solo deja el resumen en el log.
func NewAlertService(repo *Repository, telegram *TelegramClient, logger *log.Logger) *AlertService {
	return &AlertService{
		repo:     repo,
		telegram: telegram,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}
}

// Start programa el escaneo diario con la expresión cron indicada
func (as *AlertService) Start(spec string) error {
	if _, err := as.cron.AddFunc(spec, func() {
		if err := as.ScanAndNotify(time.Now()); err != nil {
			as.logger.Printf("Escaneo de alertas fallido: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("no se pudo programar el escaneo de alertas: %w", err)
	}

	as.cron.Start()
	log.Println("✅ Escaneo diario de alertas programado")
	return nil
}

// Stop detiene el planificador
func (as *AlertService) Stop() {
	as.cron.Stop()
}

// MaintenanceAlert es una fila del tablero de alertas de mantenimiento
type MaintenanceAlert struct {
	EquipmentCode  string `json:"equipment_code"`
	HoursRemaining string `json:"hours_remaining"`
	State          string `json:"state"`
}

// DocumentAlert es una fila del tablero de vencimientos
type DocumentAlert struct {
	EquipmentCode string `json:"equipment_code"`
	Kind          string `json:"kind"`
	DaysRemaining int    `json:"days_remaining"`
	Action        string `json:"action"`
	Color         string `json:"color"`
}

// CollectMaintenanceAlerts evalúa toda la flota y devuelve las filas que no
// están EN REGLA
func (as *AlertService) CollectMaintenanceAlerts() ([]MaintenanceAlert, error) {
	records, err := as.repo.ListMaintenance()
	if err != nil {
		return nil, err
	}

	var alerts []MaintenanceAlert
	for _, m := range records {
		state := m.AlertState()
		if state == models.AlertInOrder {
			continue
		}
		alerts = append(alerts, MaintenanceAlert{
			EquipmentCode:  m.EquipmentCode,
			HoursRemaining: m.HoursRemaining().StringFixed(1),
			State:          state,
		})
	}
	return alerts, nil
}

// CollectDocumentAlerts evalúa los vencimientos de SOAT/CITV a la fecha
// indicada y devuelve los que requieren acción
func (as *AlertService) CollectDocumentAlerts(today time.Time) ([]DocumentAlert, error) {
	docs, err := as.repo.ListDocuments("")
	if err != nil {
		return nil, err
	}

	var alerts []DocumentAlert
	for _, doc := range docs {
		status := doc.StatusAt(today)
		if status.Action == models.DocActionInOrder {
			continue
		}
		alerts = append(alerts, DocumentAlert{
			EquipmentCode: doc.EquipmentCode,
			Kind:          doc.Kind,
			DaysRemaining: status.DaysRemaining,
			Action:        status.Action,
			Color:         status.Color,
		})
	}
	return alerts, nil
}

// ScanAndNotify corre el escaneo completo y envía el resumen por Telegram
// cuando hay algo VENCIDO o URGENTE
func (as *AlertService) ScanAndNotify(today time.Time) error {
	maintenance, err := as.CollectMaintenanceAlerts()
	if err != nil {
		return fmt.Errorf("error evaluando mantenimiento: %w", err)
	}

	documents, err := as.CollectDocumentAlerts(today)
	if err != nil {
		return fmt.Errorf("error evaluando documentos: %w", err)
	}

	as.logger.Printf("Escaneo de alertas: %d de mantenimiento, %d de documentos",
		len(maintenance), len(documents))

	message := as.buildNotification(maintenance, documents)
	if message == "" {
		return nil // Nada urgente que avisar
	}

	if as.telegram == nil {
		as.logger.Printf("Telegram no configurado, aviso omitido:\n%s", message)
		return nil
	}

	return as.telegram.SendMessage(message)
}

// buildNotification arma el mensaje con lo VENCIDO y URGENTE; devuelve
// cadena vacía si no hay nada en esos estados
func (as *AlertService) buildNotification(maintenance []MaintenanceAlert, documents []DocumentAlert) string {
	var b strings.Builder

	for _, m := range maintenance {
		if m.State != models.AlertOverdue && m.State != models.AlertUrgent {
			continue
		}
		fmt.Fprintf(&b, "🔧 <b>%s</b>: mantenimiento %s (%s horas restantes)\n",
			m.EquipmentCode, m.State, m.HoursRemaining)
	}

	for _, d := range documents {
		if d.Action != models.DocActionOverdue && d.Action != models.DocActionRenewWeek {
			continue
		}
		fmt.Fprintf(&b, "📄 <b>%s</b>: %s %s (%d días)\n",
			d.EquipmentCode, d.Kind, d.Action, d.DaysRemaining)
	}

	if b.Len() == 0 {
		return ""
	}

	return "⚠️ <b>MAQUINARIA PRO — Alertas del día</b>\n\n" + b.String()
}
