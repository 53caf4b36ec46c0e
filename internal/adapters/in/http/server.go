// Package http exposes the quotation workflow over HTTP: a public tokenized
// response page for carriers and a JWT-protected staff API.
package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
)

// Handlers groups the use case handlers the server dispatches to.
type Handlers struct {
	CreateRequest            commands.CreateRequestCommandHandler
	UpdateRequest            commands.UpdateRequestCommandHandler
	UpdatePackages           commands.UpdatePackagesCommandHandler
	SendRequest              commands.SendRequestCommandHandler
	SubmitOffer              commands.SubmitOfferCommandHandler
	AddOffer                 commands.AddOfferCommandHandler
	BeginEvaluation          commands.BeginEvaluationCommandHandler
	ApproveOffer             commands.ApproveOfferCommandHandler
	ConfirmRequest           commands.ConfirmRequestCommandHandler
	ReopenRequest            commands.ReopenRequestCommandHandler
	RecordTransit            commands.RecordTransitCommandHandler
	CancelRequest            commands.CancelRequestCommandHandler
	SaveEvaluationParameters commands.SaveEvaluationParametersCommandHandler
	SendReminders            commands.SendInvitationRemindersCommandHandler

	ListRequests            queries.ListRequestsQueryHandler
	GetRequest              queries.GetRequestQueryHandler
	CompareOffers           queries.CompareOffersQueryHandler
	GetTrackingEvents       queries.GetTrackingEventsQueryHandler
	GetEvaluationParameters queries.GetEvaluationParametersQueryHandler
	GetResponsePage         queries.GetResponsePageQueryHandler
	EstimateRoute           queries.EstimateRouteQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts the public response page and the staff API on e.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/trasporti/risposta/:token", s.GetResponsePage)
	e.POST("/trasporti/risposta/:token", s.SubmitOffer)

	api := e.Group("/trasporti/api", AuthMiddleware(jwtSecret))
	api.GET("/richieste", s.ListRequests)
	api.POST("/richieste", s.CreateRequest)
	api.GET("/richieste/:id", s.GetRequest)
	api.PUT("/richieste/:id", s.UpdateRequest)
	api.PUT("/richieste/:id/colli", s.UpdatePackages)
	api.POST("/richieste/:id/invio", s.SendRequest)
	api.GET("/richieste/:id/offerte", s.CompareOffers)
	api.POST("/richieste/:id/offerte", s.AddOffer)
	api.POST("/richieste/:id/valutazione", s.BeginEvaluation)
	api.POST("/richieste/:id/approvazione", s.ApproveOffer)
	api.POST("/richieste/:id/conferma", s.ConfirmRequest)
	api.POST("/richieste/:id/riapertura", s.ReopenRequest)
	api.POST("/richieste/:id/in-corso", s.MarkInTransit)
	api.POST("/richieste/:id/consegna", s.MarkDelivered)
	api.POST("/richieste/:id/annullamento", s.CancelRequest)
	api.GET("/richieste/:id/tracking", s.GetTrackingEvents)
	api.GET("/offerte/:id/parametri", s.GetEvaluationParameters)
	api.PUT("/offerte/:id/parametri", s.SaveEvaluationParameters)
	api.POST("/solleciti", s.SendReminders)
	api.GET("/distanza", s.EstimateRoute)
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// GetResponsePage serves the public response page content for an invited
// carrier. An unknown token replies 404 with no detail.
func (s *Server) GetResponsePage(ctx echo.Context) error {
	token, err := kernel.AccessTokenFromString(ctx.Param("token"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	}

	query, err := queries.NewGetResponsePageQuery(token)
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := s.handlers.GetResponsePage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toResponsePageView(page))
}

// SubmitOffer records a carrier's quote submitted through the public page.
// Resubmitting through the same token replaces the previous quote.
func (s *Server) SubmitOffer(ctx echo.Context) error {
	token, err := kernel.AccessTokenFromString(ctx.Param("token"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	}

	var payload offerPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	prices, err := payload.toPrices()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSubmitOfferCommand(token, prices, payload.toTerms())
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SubmitOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ListRequests(ctx echo.Context) error {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	pageSize, _ := strconv.Atoi(ctx.QueryParam("page_size"))

	query, err := queries.NewListRequestsQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("search"),
		page,
		pageSize,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.ListRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestListView(result))
}

func (s *Server) CreateRequest(ctx echo.Context) error {
	var payload createRequestPayload
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	requesterID, err := kernel.UUIDFromString(payload.RequesterID)
	if err != nil {
		return writeError(ctx, err)
	}
	pickupAddress, err := payload.PickupAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	deliveryAddress, err := payload.DeliveryAddress.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}
	details, err := payload.Details.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(
		requestID, payload.Title, requesterID, pickupAddress, deliveryAddress, details)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CreateRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdView{ID: requestID.String()})
}

func (s *Server) GetRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetRequestQuery(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	detail, err := s.handlers.GetRequest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRequestDetailView(detail))
}

func (s *Server) UpdateRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload updateRequestPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	details, err := payload.Details.toDomain()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateRequestCommand(requestID, payload.Title, details)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.UpdateRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) UpdatePackages(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload updatePackagesPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines, err := payload.toLines()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePackagesCommand(requestID, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.UpdatePackages.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) SendRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload sendRequestPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	carrierIDs := make([]kernel.UUID, 0, len(payload.CarrierIDs))
	for _, raw := range payload.CarrierIDs {
		carrierID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return writeError(ctx, idErr)
		}
		carrierIDs = append(carrierIDs, carrierID)
	}

	adHoc := make([]commands.AdHocRecipient, len(payload.AdHoc))
	for i, recipient := range payload.AdHoc {
		adHoc[i] = commands.AdHocRecipient{
			CompanyName: recipient.CompanyName,
			Email:       recipient.Email,
		}
	}

	cmd, err := commands.NewSendRequestCommand(requestID, carrierIDs, adHoc)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SendRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CompareOffers(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewCompareOffersQuery(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	offers, err := s.handlers.CompareOffers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOfferComparisonViews(offers))
}

// AddOffer records a staff-entered offer on behalf of a carrier that replied
// out of band.
func (s *Server) AddOffer(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload addOfferPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	carrierID, err := kernel.UUIDFromString(payload.CarrierID)
	if err != nil {
		return writeError(ctx, err)
	}

	prices, err := payload.toPrices()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAddOfferCommand(requestID, carrierID, prices, payload.toTerms())
	if err != nil {
		return writeError(ctx, err)
	}

	offerID, err := s.handlers.AddOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdView{ID: offerID.String()})
}

func (s *Server) BeginEvaluation(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	operator, err := operatorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewBeginEvaluationCommand(requestID, operator)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.BeginEvaluation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ApproveOffer(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload approveOfferPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	offerID, err := kernel.UUIDFromString(payload.OfferID)
	if err != nil {
		return writeError(ctx, err)
	}

	operator, err := operatorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveOfferCommand(requestID, offerID, operator)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ApproveOffer.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ConfirmRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewConfirmRequestCommand(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ConfirmRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) ReopenRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReopenRequestCommand(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.ReopenRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) MarkInTransit(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload transitNotePayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewMarkInTransitCommand(requestID, payload.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RecordTransit.HandleInTransit(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) MarkDelivered(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload transitNotePayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewMarkDeliveredCommand(requestID, payload.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RecordTransit.HandleDelivered(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) CancelRequest(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload cancelRequestPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCancelRequestCommand(requestID, payload.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelRequest.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) GetTrackingEvents(ctx echo.Context) error {
	requestID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetTrackingEventsQuery(requestID)
	if err != nil {
		return writeError(ctx, err)
	}

	events, err := s.handlers.GetTrackingEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackingEventViews(events))
}

func (s *Server) GetEvaluationParameters(ctx echo.Context) error {
	offerID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetEvaluationParametersQuery(offerID)
	if err != nil {
		return writeError(ctx, err)
	}

	parameters, err := s.handlers.GetEvaluationParameters.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toEvaluationParameterViews(parameters))
}

func (s *Server) SaveEvaluationParameters(ctx echo.Context) error {
	offerID, err := pathID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var payload saveParametersPayload
	if err = ctx.Bind(&payload); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines := make([]commands.EvaluationParameterLine, len(payload.Parameters))
	for i, parameter := range payload.Parameters {
		lines[i] = commands.EvaluationParameterLine{
			Label: parameter.Label,
			Value: parameter.Value,
		}
	}

	cmd, err := commands.NewSaveEvaluationParametersCommand(offerID, lines)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SaveEvaluationParameters.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SendReminders triggers a reminder sweep on demand, the same one the daily
// job runs.
func (s *Server) SendReminders(ctx echo.Context) error {
	cmd, err := commands.NewSendInvitationRemindersCommand()
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SendReminders.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EstimateRoute serves the distance widget on the request form.
func (s *Server) EstimateRoute(ctx echo.Context) error {
	coordinates := make([]float64, 4)
	for i, name := range []string{"from_lat", "from_lon", "to_lat", "to_lon"} {
		value, err := strconv.ParseFloat(ctx.QueryParam(name), 64)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid coordinate: " + name,
			})
		}
		coordinates[i] = value
	}

	query, err := queries.NewEstimateRouteQuery(
		coordinates[0], coordinates[1], coordinates[2], coordinates[3])
	if err != nil {
		return writeError(ctx, err)
	}

	estimate, err := s.handlers.EstimateRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, distanceView{
		DistanzaKm:   estimate.DistanceKm,
		TempoStimato: estimate.EstimatedHours,
	})
}
