// Package fixtures contiene los datos de demostración que el servidor sirve
// cuando no hay base de datos configurada. El modo demo es una función
// visible del producto, no una ruta de error: el panel debe verse poblado
// aunque el backend no esté alcanzable.
package fixtures

import (
	"time"

	"backend_maquinaria/models"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	dec, _ := decimal.NewFromString(value)
	return dec
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Equipment devuelve el inventario de demostración
func Equipment() []models.Equipment {
	return []models.Equipment{
		{
			ID: 1, Code: "EXC-001", SerialNumber: "CAT0320GPKX02154",
			Type: "Excavadora", Brand: "Caterpillar", Model: "320 GC", Year: 2021,
			Company: "Constructora Andina SAC", Operator: "Julio Ramos", Location: "Obra Pachacútec",
			Status: models.EquipmentStatusOperational, HoursCurrent: d("3180.5"),
		},
		{
			ID: 2, Code: "CF-002", SerialNumber: "KMTWA450C02031887",
			Type: "Cargador Frontal", Brand: "Komatsu", Model: "WA450", Year: 2019,
			Company: "Constructora Andina SAC", Operator: "Miguel Torres", Location: "Cantera Norte",
			Status: models.EquipmentStatusInMaintenance, HoursCurrent: d("7420.0"),
		},
		{
			ID: 3, Code: "VOL-003", SerialNumber: "9BV4FHD40LE837111",
			Type: "Volquete", Brand: "Volvo", Model: "FMX 440", Year: 2022,
			Company: "Transportes del Sur EIRL", Operator: "Ana Quispe", Location: "Ruta Cusco-Urcos",
			Status: models.EquipmentStatusOperational, HoursCurrent: d("1890.0"),
		},
		{
			ID: 4, Code: "RDL-004", SerialNumber: "JCB3CXSM04112233",
			Type: "Retroexcavadora", Brand: "JCB", Model: "3CX", Year: 2018,
			Company: "Constructora Andina SAC", Operator: "", Location: "Almacén Central",
			Status: models.EquipmentStatusRented, HoursCurrent: d("9105.3"),
		},
	}
}

// Maintenance devuelve los programas de mantenimiento de demostración
func Maintenance() []models.Maintenance {
	return []models.Maintenance{
		{
			ID: 1, EquipmentCode: "EXC-001",
			HoursLastService: d("3000"), HoursNextDue: d("3250"), HoursCurrent: d("3180.5"),
			Type: models.MaintenancePreventive, Operator: "Julio Ramos", Location: "Obra Pachacútec",
		},
		{
			ID: 2, EquipmentCode: "CF-002",
			HoursLastService: d("7150"), HoursNextDue: d("7400"), HoursCurrent: d("7420.0"),
			Type: models.MaintenancePreventive, Operator: "Miguel Torres", Location: "Cantera Norte",
			Notes: "Se detectó fuga en el sistema hidráulico",
		},
		{
			ID: 3, EquipmentCode: "VOL-003",
			HoursLastService: d("1750"), HoursNextDue: d("2000"), HoursCurrent: d("1890.0"),
			Type: models.MaintenancePreventive, Operator: "Ana Quispe", Location: "Ruta Cusco-Urcos",
		},
		{
			ID: 4, EquipmentCode: "RDL-004",
			HoursLastService: d("8900"), HoursNextDue: d("9150"), HoursCurrent: d("9105.3"),
			Type: models.MaintenanceCorrective, Location: "Almacén Central",
		},
	}
}

// Documents devuelve los documentos SOAT/CITV de demostración. Las fechas
// se calculan relativas a hoy para que el tablero de vencimientos siempre
// muestre los cuatro colores.
func Documents() []models.Document {
	today := time.Now()
	return []models.Document{
		{
			ID: 1, EquipmentCode: "EXC-001", Kind: models.DocumentKindSOAT,
			Insurer: "Rímac Seguros", PolicyNumber: "SOAT-2026-44821",
			IssuedAt: today.AddDate(0, -9, 0), ExpiresAt: today.AddDate(0, 3, 0),
		},
		{
			ID: 2, EquipmentCode: "CF-002", Kind: models.DocumentKindSOAT,
			Insurer: "Pacífico Seguros", PolicyNumber: "SOAT-2025-91034",
			IssuedAt: today.AddDate(-1, 0, -10), ExpiresAt: today.AddDate(0, 0, -10),
		},
		{
			ID: 3, EquipmentCode: "VOL-003", Kind: models.DocumentKindCITV,
			Insurer: "Revisiones Técnicas del Perú", PolicyNumber: "CITV-88920",
			IssuedAt: today.AddDate(-1, 0, 5), ExpiresAt: today.AddDate(0, 0, 5),
		},
		{
			ID: 4, EquipmentCode: "VOL-003", Kind: models.DocumentKindSOAT,
			Insurer: "Mapfre", PolicyNumber: "SOAT-2026-17755",
			IssuedAt: today.AddDate(0, -11, 0), ExpiresAt: today.AddDate(0, 0, 25),
		},
		{
			ID: 5, EquipmentCode: "RDL-004", Kind: models.DocumentKindCITV,
			Insurer: "Revisiones Técnicas del Perú", PolicyNumber: "CITV-90211",
			IssuedAt: today.AddDate(0, -10, 0), ExpiresAt: today.AddDate(0, 0, 12),
		},
	}
}

// FuelMovements devuelve el libro de combustible de demostración
func FuelMovements() []models.FuelMovement {
	return []models.FuelMovement{
		{
			ID: 1, Kind: models.FuelKindInflow, Date: date(2026, time.August, 3),
			Gallons: d("500"), PricePerGallon: d("15.90"),
			Supplier: "Grifo San Martín", InvoiceNumber: "F001-08812",
		},
		{
			ID: 2, Kind: models.FuelKindInflow, Date: date(2026, time.August, 17),
			Gallons: d("1000"), PricePerGallon: d("15.50"),
			Supplier: "Petroperú", InvoiceNumber: "F028-55120",
		},
		{
			ID: 3, Kind: models.FuelKindOutflow, Date: date(2026, time.August, 18),
			Gallons: d("45"), EquipmentCode: "EXC-001", HourReading: d("3150.0"), Operator: "Julio Ramos",
		},
		{
			ID: 4, Kind: models.FuelKindOutflow, Date: date(2026, time.August, 21),
			Gallons: d("80"), EquipmentCode: "CF-002", HourReading: d("7398.5"), Operator: "Miguel Torres",
		},
		{
			ID: 5, Kind: models.FuelKindOutflow, Date: date(2026, time.August, 24),
			Gallons: d("35"), EquipmentCode: "VOL-003", HourReading: d("1875.0"), Operator: "Ana Quispe",
		},
	}
}

// FilterKits devuelve los catálogos de filtros de demostración
func FilterKits() []models.FilterKit {
	return []models.FilterKit{
		{
			ID: 1, EquipmentCode: "EXC-001",
			Separator:  models.FilterSlot{PartNumber: "326-1644", Quantity: 1},
			Fuel:       models.FilterSlot{PartNumber: "1R-0751", Quantity: 2},
			Oil:        models.FilterSlot{PartNumber: "1R-1808", Quantity: 1},
			AirPrimary: models.FilterSlot{PartNumber: "131-8822", Quantity: 1},
		},
		{
			ID: 2, EquipmentCode: "CF-002",
			Fuel:         models.FilterSlot{PartNumber: "1R-0751", Quantity: 1},
			Oil:          models.FilterSlot{PartNumber: "600-211-1231", Quantity: 2},
			AirPrimary:   models.FilterSlot{PartNumber: "600-185-4100", Quantity: 1},
			AirSecondary: models.FilterSlot{PartNumber: "600-185-4110", Quantity: 1},
		},
		{
			ID: 3, EquipmentCode: "VOL-003",
			Separator: models.FilterSlot{PartNumber: "21380488", Quantity: 1},
			Fuel:      models.FilterSlot{PartNumber: "21879886"}, // Cantidad sin especificar: cuenta como 1
			Oil:       models.FilterSlot{PartNumber: "21707133", Quantity: 1},
		},
	}
}

// Operators devuelve los operadores de demostración
func Operators() []models.Operator {
	hired1 := date(2019, time.March, 11)
	hired2 := date(2021, time.July, 1)
	licExpSoon := time.Now().AddDate(0, 0, 20)
	licExpOK := time.Now().AddDate(2, 0, 0)
	return []models.Operator{
		{
			ID: 1, FirstName: "Julio", LastName: "Ramos", DNI: "44218837",
			Phone: "987 654 321", LicenseNumber: "Q44218837", LicenseCategory: "A-IIIb",
			LicenseExpires: &licExpSoon, Status: models.OperatorStatusActive,
			HiredAt: &hired1, Assigned: "EXC-001",
		},
		{
			ID: 2, FirstName: "Miguel", LastName: "Torres", DNI: "40771902",
			Phone: "912 345 678", LicenseNumber: "Q40771902", LicenseCategory: "A-IIIc",
			LicenseExpires: &licExpOK, Status: models.OperatorStatusActive,
			HiredAt: &hired2, Assigned: "CF-002",
		},
		{
			ID: 3, FirstName: "Ana", LastName: "Quispe", DNI: "46120577",
			Phone: "955 221 100", LicenseNumber: "Q46120577", LicenseCategory: "A-IIIb",
			LicenseExpires: &licExpOK, Status: models.OperatorStatusVacation,
			Assigned: "VOL-003",
		},
	}
}
