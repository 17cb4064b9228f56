// Package ingest traduce registros externos (webhook del CRM, hojas de cálculo)
// a entidades con los mismos invariantes que un alta manual.
package ingest

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Field campo importable: clave interna, etiqueta visible y alias aceptados.
type Field struct {
	Key     string
	Label   string
	Aliases []string // otras claves internas (p. ej. las antiguas en español)
	CRM     []string // etiquetas nativas del CRM, con prioridad sobre Key
	Number  bool
}

// ── Ventas ──────────────────────────────────────────────────────────────────

// SaleFields esquema de importación de ventas.
var SaleFields = []Field{
	{Key: "date", Label: "Fecha"},
	{Key: "clientName", Label: "Nombre cliente", CRM: []string{"contact_name"}},
	{Key: "clientEmail", Label: "Email", CRM: []string{"contact_email"}},
	{Key: "clientPhone", Label: "Teléfono", CRM: []string{"contact_phone"}},
	{Key: "instagram", Label: "Instagram", CRM: []string{"Instagram"}},
	{Key: "product", Label: "Producto"},
	{Key: "productInterest", Label: "Producto interés", Aliases: []string{"productoInteres"}, CRM: []string{"Producto Interes"}},
	{Key: "paymentType", Label: "Tipo de pago", CRM: []string{"Tipo de pago"}},
	{Key: "installmentNumber", Label: "Número de cuota", CRM: []string{"Número de cuota"}},
	{Key: "paymentMethod", Label: "Método de pago", CRM: []string{"Método de pago"}},
	{Key: "revenue", Label: "Revenue", CRM: []string{"Revenue (€)"}, Number: true},
	{Key: "cashCollected", Label: "Cash Collected", CRM: []string{"Cash Collected (€)"}, Number: true},
	{Key: "closer", Label: "Closer", CRM: []string{"Closer Asignado"}},
	{Key: "setter", Label: "Setter", CRM: []string{"Setter Asignado"}},
	{Key: "triager", Label: "Triager", CRM: []string{"Triager Asignado"}},
	{Key: "accountManager", Label: "Gestor asignado", Aliases: []string{"gestorAsignado"}, CRM: []string{"Gestor Asignado"}},
	{Key: "utmSource", Label: "UTM Source", CRM: []string{"UTM Source"}},
	{Key: "utmMedium", Label: "UTM Medium", CRM: []string{"UTM Medium"}},
	{Key: "utmCampaign", Label: "UTM Campaign", CRM: []string{"UTM Campaign"}},
	{Key: "utmContent", Label: "UTM Content", CRM: []string{"UTM Content"}},
	{Key: "country", Label: "País", Aliases: []string{"pais"}, CRM: []string{"País"}},
	{Key: "availableCapital", Label: "Capital disponible", Aliases: []string{"capitalDisponible"}, CRM: []string{"Capital Disponible"}},
	{Key: "currentSituation", Label: "Situación actual", Aliases: []string{"situacionActual"}, CRM: []string{"Situación Actual"}},
	{Key: "amazonExperience", Label: "Exp Amazon", Aliases: []string{"expAmazon"}, CRM: []string{"Exp Amazon"}},
	{Key: "decisionMakerConfirmed", Label: "Decisor confirmado", Aliases: []string{"decisorConfirmado"}, CRM: []string{"Decisor Confirmado"}},
	{Key: "callDate", Label: "Fecha llamada", Aliases: []string{"fechaLlamada"}, CRM: []string{"Fecha de Llamada"}},
	{Key: "status", Label: "Estado"},
	{Key: "notes", Label: "Notas", CRM: []string{"Notas"}},
}

// setSaleText asigna un campo de texto por clave interna.
func setSaleText(s *entity.Sale, key, v string) {
	switch key {
	case "date":
		s.Date = entity.DateOnly(v)
	case "clientName":
		s.ClientName = v
	case "clientEmail":
		s.ClientEmail = v
	case "clientPhone":
		s.ClientPhone = v
	case "instagram":
		s.Instagram = v
	case "product":
		s.Product = v
	case "productInterest":
		s.ProductInterest = v
	case "paymentType":
		s.PaymentType = v
	case "installmentNumber":
		s.InstallmentNumber = v
	case "paymentMethod":
		s.PaymentMethod = v
	case "closer":
		s.Closer = v
	case "setter":
		s.Setter = v
	case "triager":
		s.Triager = v
	case "accountManager":
		s.AccountManager = v
	case "utmSource":
		s.UTMSource = v
	case "utmMedium":
		s.UTMMedium = v
	case "utmCampaign":
		s.UTMCampaign = v
	case "utmContent":
		s.UTMContent = v
	case "country":
		s.Country = v
	case "availableCapital":
		s.AvailableCapital = v
	case "currentSituation":
		s.CurrentSituation = v
	case "amazonExperience":
		s.AmazonExperience = v
	case "decisionMakerConfirmed":
		s.DecisionMakerConfirmed = v
	case "callDate":
		s.CallDate = v
	case "status":
		s.Status = entity.SaleStatus(v)
	case "notes":
		s.Notes = v
	}
}

func setSaleNumber(s *entity.Sale, key string, v decimal.Decimal) {
	switch key {
	case "revenue":
		s.Revenue = v
	case "cashCollected":
		s.CashCollected = v
	}
}

// ── Reportes ────────────────────────────────────────────────────────────────

// ReportFields esquema de importación de reportes diarios.
var ReportFields = []Field{
	{Key: "date", Label: "Fecha"},
	{Key: "role", Label: "Rol (setter/closer)"},
	{Key: "name", Label: "Nombre"},
	{Key: "conversationsOpened", Label: "Conversaciones", Number: true},
	{Key: "followUps", Label: "Follow Ups", Number: true},
	{Key: "offersLaunched", Label: "Ofertas", Number: true},
	{Key: "appointmentsBooked", Label: "Agendas", Number: true},
	{Key: "scheduledCalls", Label: "Llamadas agendadas", Number: true},
	{Key: "callsMade", Label: "Llamadas hechas", Number: true},
	{Key: "deposits", Label: "Depósitos", Number: true},
	{Key: "closes", Label: "Cierres", Number: true},
}

// FieldsFor esquema por tipo de importación ("sales" | "reports").
func FieldsFor(kind string) ([]Field, bool) {
	switch kind {
	case "sales":
		return SaleFields, true
	case "reports":
		return ReportFields, true
	}
	return nil, false
}
