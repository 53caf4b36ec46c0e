package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

const testSecret = "test-secret"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	estimator, err := services.NewDistanceEstimator(1.3, 70)
	require.NoError(t, err)

	server := NewServer(Handlers{
		EstimateRoute: queries.NewEstimateRouteQueryHandler(estimator),
	})

	e := echo.New()
	server.RegisterRoutes(e, testSecret)
	return e
}

func bearerFor(t *testing.T, operator kernel.UUID) string {
	t.Helper()

	token, err := GenerateToken(operator, "Mario Verdi", testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/trasporti/api/distanza", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/trasporti/api/distanza", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/trasporti/api/distanza", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := newTestEcho(t)

	token, err := GenerateToken(kernel.NewUUID(), "Mario Verdi", testSecret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/trasporti/api/distanza", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_TokenRoundTrip(t *testing.T) {
	operator := kernel.NewUUID()

	token, err := GenerateToken(operator, "Mario Verdi", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := validateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, operator.String(), claims.OperatorID)
	assert.Equal(t, "Mario Verdi", claims.Name)

	_, err = validateToken(token, "another-secret")
	assert.Error(t, err)
}

func TestEstimateRoute_MilanToRome(t *testing.T) {
	e := newTestEcho(t)

	target := "/trasporti/api/distanza?from_lat=45.4642&from_lon=9.1900&to_lat=41.9028&to_lon=12.4964"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, kernel.NewUUID()))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "distanza_km")
	require.Contains(t, body, "tempo_stimato")

	assert.InDelta(t, 620, body["distanza_km"], 50)
	assert.InDelta(t, body["distanza_km"]/70, body["tempo_stimato"], 0.01)
}

func TestEstimateRoute_InvalidCoordinate(t *testing.T) {
	e := newTestEcho(t)

	target := "/trasporti/api/distanza?from_lat=abc&from_lon=9.19&to_lat=41.9&to_lon=12.49"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderAuthorization, bearerFor(t, kernel.NewUUID()))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetResponsePage_MalformedToken(t *testing.T) {
	e := newTestEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/trasporti/risposta/not-a-token", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not found", body.Message)
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errs.NewObjectNotFoundError("request", "x"), http.StatusNotFound},
		{"offers closed", commands.ErrOffersClosed, http.StatusConflict},
		{"offer expired", commands.ErrOfferExpired, http.StatusConflict},
		{"foreign offer", commands.ErrOfferBelongsToAnotherRequest, http.StatusConflict},
		{"invalid value", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"missing value", errs.NewValueIsRequiredError("title"), http.StatusBadRequest},
		{"no recipients", commands.ErrNoRecipients, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			require.NoError(t, writeError(ctx, tt.err))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestOfferPayload_ToPrices(t *testing.T) {
	payload := offerPayload{Base: "850.00", Tolls: "12.50"}

	prices, err := payload.toPrices()
	require.NoError(t, err)

	assert.Equal(t, int64(85000), prices.Base().Cents())
	assert.Equal(t, int64(0), prices.Insurance().Cents())
	assert.Equal(t, int64(1250), prices.Tolls().Cents())
	assert.Equal(t, int64(0), prices.Extra().Cents())
}

func TestOfferPayload_ToPricesRejectsGarbage(t *testing.T) {
	payload := offerPayload{Base: "850,00"}

	_, err := payload.toPrices()
	assert.Error(t, err)
}

func TestUpdatePackagesPayload_RejectsUnknownType(t *testing.T) {
	payload := updatePackagesPayload{Packages: []packageLinePayload{
		{Quantity: 1, PackageType: "Container"},
	}}

	_, err := payload.toLines()
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
