package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"backend_maquinaria/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Formatos de exportación soportados
const (
	ExportFormatExcel = "xlsx"
	ExportFormatPDF   = "pdf"
	ExportFormatCSV   = "csv"
	ExportFormatJSON  = "json"
)

// ExportService genera archivos descargables de los tableros del panel.
// El formato es una conveniencia de presentación: no existe re-importación
// de archivos exportados.
type ExportService struct {
	repo *Repository
	dir  string
}

// NewExportService crea el servicio de exportación; los archivos se
// escriben bajo dir
func NewExportService(repo *Repository, dir string) *ExportService {
	return &ExportService{repo: repo, dir: dir}
}

// TableData son las filas visibles de un tablero listas para exportar
type TableData struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Export genera el archivo en el formato pedido y devuelve su ruta
func (es *ExportService) Export(data *TableData, format string) (string, error) {
	if err := os.MkdirAll(es.dir, 0755); err != nil {
		return "", err
	}

	// Nombre único por exportación
	fileName := fmt.Sprintf("%s_%s_%s", sanitizeFileName(data.Title),
		time.Now().Format("20060102_150405"), uuid.NewString()[:8])

	switch format {
	case ExportFormatCSV:
		return es.generateCSV(data, filepath.Join(es.dir, fileName+".csv"))
	case ExportFormatExcel:
		return es.generateExcel(data, filepath.Join(es.dir, fileName+".xlsx"))
	case ExportFormatPDF:
		return es.generatePDF(data, filepath.Join(es.dir, fileName+".pdf"))
	case ExportFormatJSON:
		return es.generateJSON(data, filepath.Join(es.dir, fileName+".json"))
	default:
		return "", fmt.Errorf("formato no soportado: %s", format)
	}
}

func sanitizeFileName(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// generateCSV genera el archivo CSV
func (es *ExportService) generateCSV(data *TableData, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(data.Headers); err != nil {
		return "", err
	}

	for _, row := range data.Rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	return filePath, nil
}

// generateExcel genera el archivo Excel
func (es *ExportService) generateExcel(data *TableData, filePath string) (string, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("No se pudo cerrar el archivo Excel: %v", err)
		}
	}()

	sheetName := "Reporte"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, row := range data.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Autofiltro sobre el rango de datos
	endCell, _ := excelize.CoordinatesToCellName(len(data.Headers), len(data.Rows)+1)
	f.AutoFilter(sheetName, "A1:"+endCell, []excelize.AutoFilterOptions{})

	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

// generatePDF genera la versión imprimible
func (es *ExportService) generatePDF(data *TableData, filePath string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)

	pdf.Cell(60, 10, data.Title)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 8)
	colWidth := 270.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.Cell(colWidth, 8, header)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 8)
	maxRows := 60
	for i, row := range data.Rows {
		if i >= maxRows {
			pdf.Cell(colWidth, 8, fmt.Sprintf("... y %d filas más", len(data.Rows)-maxRows))
			break
		}
		for _, value := range row {
			pdf.Cell(colWidth, 8, fmt.Sprintf("%.24s", value))
		}
		pdf.Ln(6)
	}

	return filePath, pdf.OutputFileAndClose(filePath)
}

// generateJSON genera el archivo JSON
func (es *ExportService) generateJSON(data *TableData, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	payload := map[string]interface{}{
		"title":        data.Title,
		"headers":      data.Headers,
		"rows":         data.Rows,
		"generated_at": time.Now(),
	}

	return filePath, encoder.Encode(payload)
}

// BuildEquipmentTable arma las filas visibles del inventario
func (es *ExportService) BuildEquipmentTable() (*TableData, error) {
	equipment, err := es.repo.ListEquipment(EquipmentFilters{})
	if err != nil {
		return nil, err
	}

	data := &TableData{
		Title:   "Inventario de Maquinaria",
		Headers: []string{"Código", "Serie", "Tipo", "Marca", "Modelo", "Año", "Empresa", "Operador", "Ubicación", "Estado", "Horómetro"},
	}
	for _, e := range equipment {
		data.Rows = append(data.Rows, []string{
			e.Code, e.SerialNumber, e.Type, e.Brand, e.Model, fmt.Sprintf("%d", e.Year),
			e.Company, e.Operator, e.Location, e.Status, e.HoursCurrent.StringFixed(1),
		})
	}
	return data, nil
}

// BuildMaintenanceTable arma el tablero de mantenimiento con el estado
// de alerta recalculado al momento de exportar
func (es *ExportService) BuildMaintenanceTable() (*TableData, error) {
	records, err := es.repo.ListMaintenance()
	if err != nil {
		return nil, err
	}

	data := &TableData{
		Title:   "Programa de Mantenimiento",
		Headers: []string{"Código", "Último Servicio", "Próximo Servicio", "Horómetro Actual", "Horas Restantes", "Tipo", "Estado"},
	}
	for _, m := range records {
		data.Rows = append(data.Rows, []string{
			m.EquipmentCode, m.HoursLastService.StringFixed(1), m.HoursNextDue.StringFixed(1),
			m.HoursCurrent.StringFixed(1), m.HoursRemaining().StringFixed(1), m.Type, m.AlertState(),
		})
	}
	return data, nil
}

// BuildDocumentsTable arma el tablero de vencimientos SOAT/CITV
func (es *ExportService) BuildDocumentsTable(kind string) (*TableData, error) {
	docs, err := es.repo.ListDocuments(kind)
	if err != nil {
		return nil, err
	}

	title := "Documentos SOAT y CITV"
	if kind != "" {
		title = "Documentos " + kind
	}

	today := time.Now()
	data := &TableData{
		Title:   title,
		Headers: []string{"Código", "Tipo", "Emisor", "Póliza", "Vence", "Días Restantes", "Acción"},
	}
	for _, doc := range docs {
		status := doc.StatusAt(today)
		data.Rows = append(data.Rows, []string{
			doc.EquipmentCode, doc.Kind, doc.Insurer, doc.PolicyNumber,
			doc.ExpiresAt.Format("02/01/2006"), fmt.Sprintf("%d", status.DaysRemaining), status.Action,
		})
	}
	return data, nil
}

// BuildFuelTable arma el libro de combustible con sus totales
func (es *ExportService) BuildFuelTable() (*TableData, error) {
	movements, err := es.repo.ListFuelMovements()
	if err != nil {
		return nil, err
	}

	data := &TableData{
		Title:   "Libro de Combustible",
		Headers: []string{"Fecha", "Movimiento", "Galones", "Precio/Galón", "Total", "Proveedor/Unidad", "Operador"},
	}
	for _, m := range movements {
		detail := m.Supplier
		if m.Kind == models.FuelKindOutflow {
			detail = m.EquipmentCode
		}
		data.Rows = append(data.Rows, []string{
			m.Date.Format("02/01/2006"), m.Kind, m.Gallons.StringFixed(2),
			m.PricePerGallon.StringFixed(2), m.Total().StringFixed(2), detail, m.Operator,
		})
	}

	summary := models.SummarizeFuel(movements)
	data.Rows = append(data.Rows, []string{
		"", "STOCK TANQUE", summary.TankStock.StringFixed(2), "",
		summary.TotalSpent.StringFixed(2), "", "",
	})
	return data, nil
}

// BuildPurchaseListTable arma la lista consolidada de compra de filtros
func (es *ExportService) BuildPurchaseListTable(codes []string) (*TableData, error) {
	kits, err := es.repo.ListFilterKits(codes)
	if err != nil {
		return nil, err
	}

	data := &TableData{
		Title:   "Lista de Compra de Filtros",
		Headers: []string{"Número de Parte", "Cantidad", "Unidades"},
	}
	for _, line := range models.ConsolidatePurchaseList(kits) {
		data.Rows = append(data.Rows, []string{
			line.PartNumber, fmt.Sprintf("%d", line.Quantity), fmt.Sprintf("%v", line.Equipment),
		})
	}
	return data, nil
}

// BuildOperatorsTable arma el listado de operadores
func (es *ExportService) BuildOperatorsTable() (*TableData, error) {
	operators, err := es.repo.ListOperators("")
	if err != nil {
		return nil, err
	}

	data := &TableData{
		Title:   "Operadores",
		Headers: []string{"DNI", "Nombre", "Teléfono", "Licencia", "Categoría", "Vence Licencia", "Estado", "Asignación"},
	}
	for _, o := range operators {
		licExpires := ""
		if o.LicenseExpires != nil {
			licExpires = o.LicenseExpires.Format("02/01/2006")
		}
		data.Rows = append(data.Rows, []string{
			o.DNI, o.FullName(), o.Phone, o.LicenseNumber, o.LicenseCategory,
			licExpires, o.Status, o.Assigned,
		})
	}
	return data, nil
}
