package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// DocumentAPI expone los documentos vehiculares (SOAT y CITV) y su
// semaforización de vencimientos
type DocumentAPI struct {
	Repo    *services.Repository
	History *services.HistoryService
	Cache   DashboardInvalidator
	// Now permite fijar el reloj en las pruebas
	Now func() time.Time
}

// NewDocumentAPI crea un nuevo DocumentAPI
func NewDocumentAPI(repo *services.Repository, history *services.HistoryService) *DocumentAPI {
	return &DocumentAPI{Repo: repo, History: history, Now: time.Now}
}

// DocumentRow es una fila del tablero: el documento más su estado derivado
type DocumentRow struct {
	models.Document
	Status models.DocumentStatus `json:"document_status"`
}

// GetDocumentBoard devuelve los documentos con días restantes, acción y
// color calculados contra la fecha de hoy
func (api *DocumentAPI) GetDocumentBoard(c *gin.Context) {
	kind := strings.ToUpper(c.Query("kind"))
	if kind != "" && kind != models.DocumentKindSOAT && kind != models.DocumentKindCITV {
		respondError(c, http.StatusBadRequest, "Tipo de documento desconocido: "+kind)
		return
	}

	documents, err := api.Repo.ListDocuments(kind)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error al obtener los documentos: "+err.Error())
		return
	}

	today := api.Now()
	rows := make([]DocumentRow, 0, len(documents))
	counters := make(map[string]int)
	for i := range documents {
		status := documents[i].StatusAt(today)
		counters[status.Action]++
		rows = append(rows, DocumentRow{Document: documents[i], Status: status})
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"items":    rows,
		"total":    len(rows),
		"counters": counters,
	})
}

// CreateDocument registra un documento nuevo para una unidad
func (api *DocumentAPI) CreateDocument(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	doc.EquipmentCode = strings.ToUpper(strings.TrimSpace(doc.EquipmentCode))
	doc.Kind = strings.ToUpper(strings.TrimSpace(doc.Kind))

	if doc.EquipmentCode == "" {
		respondError(c, http.StatusBadRequest, "El código de la unidad es obligatorio")
		return
	}
	if doc.Kind != models.DocumentKindSOAT && doc.Kind != models.DocumentKindCITV {
		respondError(c, http.StatusBadRequest, "El tipo debe ser SOAT o CITV")
		return
	}
	if doc.ExpiresAt.IsZero() {
		respondError(c, http.StatusBadRequest, "La fecha de vencimiento es obligatoria")
		return
	}

	var equipment models.Equipment
	if err := db.Where("code = ?", doc.EquipmentCode).First(&equipment).Error; err != nil {
		respondError(c, http.StatusNotFound, "Unidad no encontrada: "+doc.EquipmentCode)
		return
	}

	if err := db.Create(&doc).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al crear el documento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: doc.TableName(),
		Action:    services.HistoryActionCreate,
		RecordID:  doc.ID,
		NewValues: doc,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusCreated, false, "Documento creado correctamente", doc)
}

// UpdateDocument actualiza los datos de un documento
func (api *DocumentAPI) UpdateDocument(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Documento no encontrado")
		return
	}
	previous := doc

	var updates models.Document
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	updates.ID = doc.ID
	updates.EquipmentCode = doc.EquipmentCode
	updates.Kind = doc.Kind

	if err := db.Model(&doc).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al actualizar el documento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: doc.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  doc.ID,
		OldValues: previous,
		NewValues: doc,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Documento actualizado", doc)
}

// DeleteDocument elimina (soft delete) un documento
func (api *DocumentAPI) DeleteDocument(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Documento no encontrado")
		return
	}

	if err := db.Delete(&doc).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al eliminar el documento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: doc.TableName(),
		Action:    services.HistoryActionDelete,
		RecordID:  doc.ID,
		OldValues: doc,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Documento eliminado", nil)
}

// RenewDocumentRequest permite fijar una fecha distinta a la propuesta
type RenewDocumentRequest struct {
	ExpiresAt    *time.Time `json:"expires_at"`
	Insurer      string     `json:"insurer"`
	PolicyNumber string     `json:"policy_number"`
}

// RenewDocument renueva un documento. Si no se manda fecha, la nueva
// vigencia es un año calendario después del vencimiento actual.
func (api *DocumentAPI) RenewDocument(c *gin.Context) {
	db, err := api.Repo.DB()
	if err != nil {
		respondMutationError(c, err)
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var doc models.Document
	if err := db.First(&doc, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Documento no encontrado")
		return
	}
	previous := doc

	// Renovar sin cuerpo es válido: aplica la fecha propuesta por defecto
	var req RenewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	newExpiry := doc.RenewalDefault()
	if req.ExpiresAt != nil {
		newExpiry = *req.ExpiresAt
	}
	if !newExpiry.After(doc.ExpiresAt) {
		respondError(c, http.StatusBadRequest, "La vigencia nueva debe ser posterior al vencimiento actual")
		return
	}

	doc.IssuedAt = api.Now()
	doc.ExpiresAt = newExpiry
	if req.Insurer != "" {
		doc.Insurer = req.Insurer
	}
	if req.PolicyNumber != "" {
		doc.PolicyNumber = req.PolicyNumber
	}

	if err := db.Save(&doc).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Error al renovar el documento: "+err.Error())
		return
	}

	api.History.Record(services.HistoryEntry{
		TableName: doc.TableName(),
		Action:    services.HistoryActionUpdate,
		RecordID:  doc.ID,
		OldValues: previous,
		NewValues: doc,
		Username:  c.GetString("username"),
		IPAddress: c.ClientIP(),
	})

	invalidateDashboard(api.Cache)
	respondMessage(c, http.StatusOK, false, "Documento renovado", DocumentRow{
		Document: doc,
		Status:   doc.StatusAt(api.Now()),
	})
}
