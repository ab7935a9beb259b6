package api

import (
	"errors"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	drepo "github.com/ShiblySohaib/wfmarket/internal/domain/repository"
	"github.com/ShiblySohaib/wfmarket/internal/usecase"
	xhttp "github.com/ShiblySohaib/wfmarket/pkg/http"
	xlogger "github.com/ShiblySohaib/wfmarket/pkg/logger"
)

// MarketHandler exposes the fetch session surface: start, poll, server status.
type MarketHandler struct {
	logger  *xlogger.Logger
	fetcher *usecase.MarketFetcher
	store   drepo.ProgressStore

	// statusChecked flips on the first server-status poll after process start.
	statusChecked atomic.Bool
}

func NewMarketHandler(logger *xlogger.Logger, fetcher *usecase.MarketFetcher, store drepo.ProgressStore) *MarketHandler {
	return &MarketHandler{logger: logger, fetcher: fetcher, store: store}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.POST("/fetch", h.StartFetch)
	g.GET("/fetch/progress", h.Progress)
	g.GET("/server-status", h.ServerStatus)
}

// StartFetchResponse carries the handle for progress polling.
type StartFetchResponse struct {
	SessionID string `json:"session_id"`
}

// StartFetch kicks off a background fetch run and returns its session id.
func (h *MarketHandler) StartFetch(c echo.Context) error {
	sessionID, err := h.fetcher.Start(c.Request().Context())
	if err != nil {
		h.logger.Error("fetch start failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not start market fetch").WithError(err))
	}
	return xhttp.SuccessResponse(c, &StartFetchResponse{SessionID: sessionID})
}

// ProgressRequest is the polling query.
type ProgressRequest struct {
	SessionID string `query:"session_id" validate:"required,uuid"`
}

// Progress returns the current record for a session, 404 once it expired.
func (h *MarketHandler) Progress(c echo.Context) error {
	req := &ProgressRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.store.Get(c.Request().Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, drepo.ErrSessionNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("session %s not found or expired", req.SessionID))
		}
		h.logger.Error("progress lookup failed",
			xlogger.String("session", req.SessionID),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not load progress").WithError(err))
	}
	return xhttp.SuccessResponse(c, rec)
}

// ServerStatusResponse reports whether this poll is the first since the
// process started, so a client can decide to auto-start a fetch.
type ServerStatusResponse struct {
	FirstStart bool `json:"first_start"`
}

// ServerStatus reports the first-poll-since-startup signal.
func (h *MarketHandler) ServerStatus(c echo.Context) error {
	first := h.statusChecked.CompareAndSwap(false, true)
	return xhttp.SuccessResponse(c, &ServerStatusResponse{FirstStart: first})
}
