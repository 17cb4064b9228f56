package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/auth"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/ventas-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

const webhookKey = "env-webhook-key"

// ── Servidor completo sobre repositorios en memoria ─────────────────────────

func newServer(t *testing.T) (*fiber.App, memory.Repositories) {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())

	feeUC := usecase.NewPaymentFeeUseCase(repos.Fees)
	_, err := feeUC.SeedDefaults(ctx)
	require.NoError(t, err)
	teamUC := usecase.NewTeamUseCase(repos.Team)
	_, err = teamUC.EnsureDirector(ctx, "Dirección", "dir@example.com", "secreto123")
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "test", CORSOrigins: "*", Log: logger.Nop()})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(repos.Team, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		TeamUC:        teamUC,
		SaleUC:        usecase.NewSaleUseCase(repos.Sales, repos.Fees, spreadsheet.NewWriter(), ""),
		ReportUC:      usecase.NewReportUseCase(repos.Reports),
		FeeUC:         feeUC,
		N8nUC:         usecase.NewN8nConfigUseCase(repos.N8n),
		ProjectionUC:  usecase.NewProjectionUseCase(repos.Projections, repos.Team),
		BoardUC:       analytics.NewProjectionBoardUseCase(repos.Projections, repos.Team, repos.Sales, repos.Reports, repos.Fees),
		SalesDashUC:   analytics.NewSalesDashboardUseCase(repos.Sales, repos.Reports, repos.Fees),
		ReportsDashUC: analytics.NewReportsDashboardUseCase(repos.Reports, repos.Sales, repos.Fees),
		CommissionUC:  analytics.NewCommissionUseCase(repos.Team, repos.Sales, repos.Fees, pdf.NewMarotoPDFGenerator("Test")),
		ImportUC:      ingest.NewImportUseCase(repos.Tx, spreadsheet.NewReader(), "", logger.Nop()),
		WebhookUC:     ingest.NewWebhookUseCase(repos.Sales, repos.N8n, webhookKey, "", logger.Nop()),
		JWTSecret:     testJWTSecret,
	})
	return app, repos
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func directorToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, data := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "dir@example.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	return "Bearer " + out.Token
}

// ── Tests ───────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := newServer(t)
	resp, data := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"ok"`)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestLogin_YMe(t *testing.T) {
	app, _ := newServer(t)
	tok := directorToken(t, app)

	resp, data := call(t, app, http.MethodGet, "/api/auth/me", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"can_see_all":true`)

	resp, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "dir@example.com", "password": "mala-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, data = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "no-es-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"email"`, "el detalle usa el nombre JSON del campo")
}

func TestSales_CrearListarYEditar(t *testing.T) {
	app, _ := newServer(t)
	tok := tokenForRoles(t, "closer")

	resp, data := call(t, app, http.MethodPost, "/api/sales", tok, map[string]any{
		"date": "2026-02-03", "client_name": "Laura", "payment_method": "Stripe",
		"revenue": "1000", "cash_collected": "1000", "closer": "Emi",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var created struct {
		ID      string `json:"id"`
		NetCash string `json:"net_cash"`
	}
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "971", created.NetCash, "Stripe 2,9 %")

	resp, data = call(t, app, http.MethodGet, "/api/sales?closer=Emi&from=2026-02-01&to=2026-02-28", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"count":1`)

	resp, data = call(t, app, http.MethodPatch, "/api/sales/"+created.ID, tok, map[string]any{"status": "Pendiente"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, string(data), `"status":"Pendiente"`)

	resp, _ = call(t, app, http.MethodGet, "/api/sales/no-existe", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/sales/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSales_ValidacionPorCampo(t *testing.T) {
	app, _ := newServer(t)
	resp, data := call(t, app, http.MethodPost, "/api/sales", tokenForRoles(t, "setter"), map[string]any{
		"client_email": "no-valido", "status": "Otra",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out apphttp.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Contains(t, out.Fields, "client_email")
	assert.Contains(t, out.Fields, "status")
}

func TestSales_ExportaXLSX(t *testing.T) {
	app, _ := newServer(t)
	tok := tokenForRoles(t, "manager")
	resp, _ := call(t, app, http.MethodPost, "/api/sales", tok, map[string]any{"date": "2026-02-03", "cash_collected": "500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, data := call(t, app, http.MethodGet, "/api/sales/export", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
	assert.Equal(t, "PK", string(data[:2]), "un xlsx es un zip")
}

func TestTeam_SoloDirector(t *testing.T) {
	app, _ := newServer(t)

	resp, _ := call(t, app, http.MethodGet, "/api/team", tokenForRoles(t, "closer", "manager"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	tok := directorToken(t, app)
	resp, data := call(t, app, http.MethodPost, "/api/team", tok, map[string]any{
		"name": "Emi", "email": "emi@example.com", "password": "12345678", "roles": []string{"closer"}, "commission_rate": "0.1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, _ = call(t, app, http.MethodPost, "/api/team", tok, map[string]any{
		"name": "Otra", "email": "EMI@example.com", "password": "12345678", "roles": []string{"setter"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTeam_UltimoDirectorConflicto(t *testing.T) {
	app, repos := newServer(t)
	tok := directorToken(t, app)

	dir, err := repos.Team.GetByEmail(context.Background(), "dir@example.com")
	require.NoError(t, err)
	require.NotNil(t, dir)

	resp, data := call(t, app, http.MethodDelete, "/api/team/"+dir.ID, tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(data), `"code":"CONFLICT"`)

	resp, _ = call(t, app, http.MethodPatch, "/api/team/"+dir.ID, tok, map[string]any{"active": false})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPaymentFees_LecturaLibreEscrituraDirector(t *testing.T) {
	app, _ := newServer(t)
	closer := tokenForRoles(t, "closer")

	resp, data := call(t, app, http.MethodGet, "/api/payment-fees", closer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "Stripe")

	resp, _ = call(t, app, http.MethodPost, "/api/payment-fees", closer, map[string]any{"method": "Bizum", "fee_rate": "0.01"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebhook_AltaYDuplicado(t *testing.T) {
	app, repos := newServer(t)
	payload := map[string]any{
		"activity_id":        "act-42",
		"date":               "2026-02-10",
		"contact_name":       "Laura",
		"Cash Collected (€)": 1000,
		"Método de pago":     "Transferencia",
		"Closer Asignado":    "Emi",
	}

	resp, _ := call(t, app, http.MethodPost, "/api/webhook/sale", "", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "sin X-API-Key")

	send := func() (*http.Response, []byte) {
		b, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/sale", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apphttp.HeaderAPIKey, webhookKey)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		return resp, data
	}

	resp, data := send()
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))

	resp, data = send()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var dup struct {
		ExistingID string `json:"existing_id"`
	}
	require.NoError(t, json.Unmarshal(data, &dup))
	assert.Equal(t, created.ID, dup.ExistingID)

	list, err := repos.Sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1, "el duplicado no se guarda")
}

func TestImport_PreviewYConfirmacion(t *testing.T) {
	app, repos := newServer(t)
	tok := tokenForRoles(t, "manager")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("type", "sales"))
	fw, err := w.CreateFormFile("file", "ventas.csv")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("Fecha;Closer;Cash Collected\n2026-02-01;Emi;1.200,50\n"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var preview struct {
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	require.Len(t, preview.Records, 1)

	resp2, data := call(t, app, http.MethodPost, "/api/import/sales", tok, map[string]any{"records": preview.Records})
	require.Equal(t, http.StatusCreated, resp2.StatusCode, string(data))
	assert.Contains(t, string(data), `"imported":1`)

	list, err := repos.Sales.List(context.Background(), repository.SaleFilter{Closer: "Emi"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1200.5", list[0].CashCollected.String())
}

func TestImport_FilaInvalidaNoGuardaNada(t *testing.T) {
	app, repos := newServer(t)
	resp, data := call(t, app, http.MethodPost, "/api/import/sales", tokenForRoles(t, "director"), map[string]any{
		"records": []map[string]any{
			{"date": "2026-02-01", "closer": "Emi"},
			{"date": "2026-02-02", "paymentType": "9 cuotas"},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), `"row":2`)

	list, err := repos.Sales.List(context.Background(), repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	resp, _ = call(t, app, http.MethodPost, "/api/import/sales", tokenForRoles(t, "closer"), map[string]any{"records": []map[string]any{{}}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboardsYComisiones(t *testing.T) {
	app, _ := newServer(t)
	tok := tokenForRoles(t, "manager")

	resp, data := call(t, app, http.MethodGet, "/api/dashboard/sales?preset=no-valido", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"start":"2020-01-01"`, "preset mal formado se resuelve como all")

	resp, _ = call(t, app, http.MethodGet, "/api/dashboard/reports?preset=last7", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/commissions?month=2026-13", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data = call(t, app, http.MethodGet, "/api/commissions/statement?month=2026-02", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "%PDF", string(data[:4]))

	resp, _ = call(t, app, http.MethodGet, "/api/projections/board?period_type=weekly&period=2026-02", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProjections_EscrituraSoloManagers(t *testing.T) {
	app, _ := newServer(t)
	body := map[string]any{"period": "2026-02", "period_type": "monthly", "scope": "company", "cash_target": "10000"}

	resp, _ := call(t, app, http.MethodPost, "/api/projections", tokenForRoles(t, "setter"), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, data := call(t, app, http.MethodPost, "/api/projections", tokenForRoles(t, "manager"), body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	resp, _ = call(t, app, http.MethodPost, "/api/projections", tokenForRoles(t, "manager"), body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
