// Package httpapi serves rosters as JSON over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"github.com/vovakirdan/tui-dex/internal/api"
	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

// Searcher runs a query over a region. *roster.Service implements it.
type Searcher interface {
	Search(ctx context.Context, regionID string, q pokemon.Query) ([]pokemon.Record, error)
}

type Handler struct {
	svc      Searcher
	maxLimit int
	logger   *log.Logger
}

func NewHandler(svc Searcher, maxLimit int, logger *log.Logger) *Handler {
	if maxLimit <= 0 {
		maxLimit = 72
	}
	return &Handler{svc: svc, maxLimit: maxLimit, logger: logger}
}

// New returns an Echo instance with middleware and routes installed.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(RequestIDMiddleware())
	e.Use(LoggingMiddleware(h.logger))

	h.Register(e)
	return e
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/api/regions", h.Regions)
	e.GET("/api/stats", h.StatBounds)
	e.GET("/api/:region", h.ListRoster)
	e.GET("/api/:region/", h.ListRoster)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Regions(c echo.Context) error {
	regions := registry.List()
	out := make([]RegionResponse, len(regions))
	for i, r := range regions {
		out[i] = RegionResponse{ID: r.ID, Title: r.Title, Path: r.Path}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) StatBounds(c echo.Context) error {
	base, err := strconv.Atoi(c.QueryParam("base"))
	if err != nil || base < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "base must be a non-negative integer"})
	}

	isHP := false
	if raw := c.QueryParam("hp"); raw != "" {
		isHP, err = strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "hp must be a boolean"})
		}
	}

	b := pokemon.ComputeStatBounds(base, isHP)
	return c.JSON(http.StatusOK, BoundsResponse{
		Base:    base,
		HP:      isHP,
		Min:     b.Min,
		Max:     b.Max,
		Display: pokemon.FormatBounds(b),
	})
}

// ListRoster answers GET /api/:region/ with q, type1, type2, limit, offset
// and <k>_op/<k>_line stat conditions. Without type1 and type2 no type
// filter is applied.
func (h *Handler) ListRoster(c echo.Context) error {
	q, err := queryFromRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	offset, err := intParam(c, "offset", 0)
	if err != nil || offset < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "offset must be a non-negative integer"})
	}
	limit, err := intParam(c, "limit", pokemon.DefaultPerPage)
	if err != nil || limit < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	results, err := h.svc.Search(c.Request().Context(), c.Param("region"), q)
	if err != nil {
		return h.mapError(c, err)
	}

	page := pokemon.Window(results, offset, limit, h.maxLimit)
	resp := ListResponse{
		Count:   len(results),
		Results: make([]RecordResponse, len(page)),
	}
	for i, r := range page {
		resp.Results[i] = toRecordResponse(r)
	}
	if offset < len(results) && limit < len(results)-offset {
		resp.Next = pageURL(c, offset+limit, limit)
	}
	if offset > 0 {
		resp.Previous = pageURL(c, max(offset-limit, 0), limit)
	}

	return c.JSON(http.StatusOK, resp)
}

func queryFromRequest(c echo.Context) (pokemon.Query, error) {
	q := pokemon.NewQuery()
	q.Name = c.QueryParam("q")
	q.Stats = pokemon.StatConditionsFromQuery(c.QueryParam)

	raw1, raw2 := c.QueryParam("type1"), c.QueryParam("type2")
	if raw1 == "" && raw2 == "" {
		return q, nil
	}

	var err error
	q.NoTypeFilter = false
	if q.Type1, err = pokemon.ParseSelector(raw1); err != nil {
		return q, err
	}
	if q.Type2, err = pokemon.ParseSelector(raw2); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// pageURL rebuilds the request URL with a different window.
func pageURL(c echo.Context, offset, limit int) *string {
	u := *c.Request().URL
	values := u.Query()
	values.Set("offset", strconv.Itoa(offset))
	values.Set("limit", strconv.Itoa(limit))
	u.RawQuery = values.Encode()

	scheme := c.Scheme()
	full := (&url.URL{Scheme: scheme, Host: c.Request().Host, Path: u.Path, RawQuery: u.RawQuery}).String()
	return &full
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, registry.ErrUnknownRegion):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, storage.ErrNotCached):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	case errors.Is(err, api.ErrUpstream):
		h.logger.Error("upstream failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream roster API failure"})
	default:
		h.logger.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
