package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend_maquinaria/services"
	"backend_maquinaria/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// newTestServices levanta la base en memoria y los servicios que usan los
// handlers en las pruebas
func newTestServices(t *testing.T) (*gorm.DB, *services.Repository, *services.HistoryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutils.SetupTestDB()
	if err != nil {
		t.Fatalf("no se pudo levantar la base de prueba: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	return db, services.NewRepository(db), services.NewHistoryService(db, logger)
}

// newDemoServices arma los servicios sin base de datos (modo demo)
func newDemoServices(t *testing.T) (*services.Repository, *services.HistoryService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New(io.Discard, "", 0)
	return services.NewRepository(nil), services.NewHistoryService(nil, logger)
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("respuesta no es JSON válido: %v", err)
	}
	return response
}
