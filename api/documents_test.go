package api

import (
	"net/http"
	"testing"
	"time"

	"backend_maquinaria/models"
	"backend_maquinaria/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetDocumentBoard(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, -10)
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindCITV, 5)
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, 60)

	router := gin.New()
	router.GET("/documentos", documentAPI.GetDocumentBoard)

	w := doJSON(router, "GET", "/documentos", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total"])

	counters := data["counters"].(map[string]interface{})
	assert.Equal(t, float64(1), counters[models.DocActionOverdue])
	assert.Equal(t, float64(1), counters[models.DocActionRenewWeek])
	assert.Equal(t, float64(1), counters[models.DocActionInOrder])
}

func TestGetDocumentBoardFilterByKind(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, 60)
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindCITV, 60)

	router := gin.New()
	router.GET("/documentos", documentAPI.GetDocumentBoard)

	w := doJSON(router, "GET", "/documentos?kind=CITV", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestGetDocumentBoardRejectsUnknownKind(t *testing.T) {
	_, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)

	router := gin.New()
	router.GET("/documentos", documentAPI.GetDocumentBoard)

	w := doJSON(router, "GET", "/documentos?kind=BREVETE", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDocumentRequiresExistingEquipment(t *testing.T) {
	_, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)

	router := gin.New()
	router.POST("/documentos", documentAPI.CreateDocument)

	w := doJSON(router, "POST", "/documentos", gin.H{
		"equipment_code": "EXC-404",
		"kind":           "SOAT",
		"expires_at":     time.Now().AddDate(1, 0, 0),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenewDocumentDefaultsToOneYear(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	doc, _ := testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, 5)
	originalExpiry := doc.ExpiresAt

	router := gin.New()
	router.POST("/documentos/:id/renovar", documentAPI.RenewDocument)

	w := doJSON(router, "POST", "/documentos/1/renovar", gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)

	var renewed models.Document
	db.First(&renewed, doc.ID)

	// La vigencia por defecto es un año calendario después del vencimiento
	expected := originalExpiry.AddDate(1, 0, 0)
	assert.Equal(t, expected.Year(), renewed.ExpiresAt.Year())
	assert.Equal(t, expected.Month(), renewed.ExpiresAt.Month())
	assert.Equal(t, expected.Day(), renewed.ExpiresAt.Day())
}

func TestRenewDocumentWithoutBody(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	doc, _ := testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, 5)
	originalExpiry := doc.ExpiresAt

	router := gin.New()
	router.POST("/documentos/:id/renovar", documentAPI.RenewDocument)

	// Sin cuerpo, no solo con {}: también aplica la fecha por defecto
	w := doJSON(router, "POST", "/documentos/1/renovar", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var renewed models.Document
	db.First(&renewed, doc.ID)
	assert.Equal(t, originalExpiry.AddDate(1, 0, 0).Year(), renewed.ExpiresAt.Year())
}

func TestRenewDocumentWithExplicitDate(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	doc, _ := testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindCITV, 3)

	router := gin.New()
	router.POST("/documentos/:id/renovar", documentAPI.RenewDocument)

	newExpiry := time.Now().AddDate(0, 6, 0)
	w := doJSON(router, "POST", "/documentos/1/renovar", gin.H{
		"expires_at":    newExpiry,
		"policy_number": "CITV-NUEVO-01",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var renewed models.Document
	db.First(&renewed, doc.ID)
	assert.Equal(t, "CITV-NUEVO-01", renewed.PolicyNumber)
	assert.Equal(t, newExpiry.Day(), renewed.ExpiresAt.Day())
}

func TestRenewDocumentRejectsEarlierDate(t *testing.T) {
	db, repo, history := newTestServices(t)
	documentAPI := NewDocumentAPI(repo, history)
	testutils.CreateTestEquipment(db, "EXC-001", "100")
	testutils.CreateTestDocument(db, "EXC-001", models.DocumentKindSOAT, 30)

	router := gin.New()
	router.POST("/documentos/:id/renovar", documentAPI.RenewDocument)

	w := doJSON(router, "POST", "/documentos/1/renovar", gin.H{
		"expires_at": time.Now().AddDate(0, 0, -1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
