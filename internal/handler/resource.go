package handler

import (
	"net/http"

	"github.com/edustack/admin-api/internal/errs"
	"github.com/edustack/admin-api/internal/identifier"
	"github.com/edustack/admin-api/internal/repository"
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/service"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/labstack/echo/v4"
)

// ResourceHandler serves the CRUD endpoints of every managed entity.
// One instance handles all entities; routes bind it to a specific
// descriptor.
type ResourceHandler struct {
	Handler
	services *service.Services
}

func NewResourceHandler(s *server.Server, services *service.Services) *ResourceHandler {
	return &ResourceHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// listResponse is the envelope for paged collections.
type listResponse struct {
	Data []any        `json:"data"`
	Meta responseMeta `json:"meta"`
}

type responseMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type dataResponse struct {
	Data any `json:"data"`
}

// List serves GET /<entities>. Pagination is clamped, never rejected:
// a wild page number still yields a valid page. The search term runs
// through the truncating sanitizer so hostile input degrades into a
// harmless (possibly shorter) search.
func (h *ResourceHandler) List(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "list_"+ent.Table, http.StatusOK, func(c echo.Context) (any, error) {
			params := h.server.Pagination.Clamp(
				c.QueryParam("page"),
				c.QueryParam("limit"),
				c.QueryParam("search"),
			)

			if params.Search != "" {
				clean, err := h.server.SearchSanitizer.SanitizeString(params.Search, "search")
				if err != nil {
					return nil, err
				}
				params.Search = clean
			}

			result, err := h.services.Resources.List(
				c.Request().Context(), ent, params,
				c.QueryParam("sortBy"), c.QueryParam("sortOrder"),
			)
			if err != nil {
				return nil, err
			}

			return listEnvelope(result, params.Page, params.Limit), nil
		})
	}
}

// Export serves GET /<entities>/export: the strict counterpart of
// List. Out-of-range or malformed pagination, unknown sort columns
// and suspicious search input are rejected rather than repaired, so
// an export never silently differs from what was asked for.
func (h *ResourceHandler) Export(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "export_"+ent.Table, http.StatusOK, func(c echo.Context) (any, error) {
			sorted, err := h.server.Pagination.Validate(
				c.QueryParam("page"),
				c.QueryParam("limit"),
				c.QueryParam("sortBy"),
				c.QueryParam("sortOrder"),
				ent.SortKeys(),
			)
			if err != nil {
				return nil, err
			}

			search := c.QueryParam("search")
			if search != "" {
				clean, err := h.server.Sanitizer.SanitizeString(search, "search")
				if err != nil {
					return nil, err
				}
				search = clean
			}
			sorted.Search = search

			result, err := h.services.Resources.List(
				c.Request().Context(), ent, sorted.Params,
				sorted.SortBy, sorted.SortOrder,
			)
			if err != nil {
				return nil, err
			}

			return listEnvelope(result, sorted.Page, sorted.Limit), nil
		})
	}
}

// Get serves GET /<entities>/:id.
func (h *ResourceHandler) Get(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "get_"+ent.Table, http.StatusOK, func(c echo.Context) (any, error) {
			id, err := identifier.Validate(c.Param("id"), idLabel(ent))
			if err != nil {
				return nil, err
			}

			record, err := h.services.Resources.Get(c.Request().Context(), ent, id)
			if err != nil {
				return nil, err
			}
			return dataResponse{Data: record.ToAny()}, nil
		})
	}
}

// Create serves POST /<entities>. The payload is dynamic; it passes
// through the rejecting sanitizer before anything touches it.
func (h *ResourceHandler) Create(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "create_"+ent.Table, http.StatusCreated, func(c echo.Context) (any, error) {
			record, err := h.bindPayload(c)
			if err != nil {
				return nil, err
			}

			created, err := h.services.Resources.Create(c.Request().Context(), ent, record)
			if err != nil {
				return nil, err
			}
			return dataResponse{Data: created.ToAny()}, nil
		})
	}
}

// Update serves PUT /<entities>/:id.
func (h *ResourceHandler) Update(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "update_"+ent.Table, http.StatusOK, func(c echo.Context) (any, error) {
			id, err := identifier.Validate(c.Param("id"), idLabel(ent))
			if err != nil {
				return nil, err
			}

			record, err := h.bindPayload(c)
			if err != nil {
				return nil, err
			}

			updated, err := h.services.Resources.Update(c.Request().Context(), ent, id, record)
			if err != nil {
				return nil, err
			}
			return dataResponse{Data: updated.ToAny()}, nil
		})
	}
}

// Delete serves DELETE /<entities>/:id.
func (h *ResourceHandler) Delete(ent repository.Entity) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.run(c, "delete_"+ent.Table, http.StatusNoContent, func(c echo.Context) (any, error) {
			id, err := identifier.Validate(c.Param("id"), idLabel(ent))
			if err != nil {
				return nil, err
			}

			if err := h.services.Resources.Delete(c.Request().Context(), ent, id); err != nil {
				return nil, err
			}
			return nil, nil
		})
	}
}

// bindPayload decodes the JSON body into a Value tree and runs the
// rejecting sanitizer over it.
func (h *ResourceHandler) bindPayload(c echo.Context) (transform.Value, error) {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return transform.Null(), errs.NewBadRequestError("Invalid JSON body", false, nil, nil, nil)
	}

	v, err := transform.FromAny(body)
	if err != nil {
		return transform.Null(), errs.NewBadRequestError("Unsupported value in request body", false, nil, nil, nil)
	}

	return h.server.Sanitizer.Sanitize(v)
}

func listEnvelope(result repository.ListResult, page, limit int) listResponse {
	data := make([]any, len(result.Items))
	for i, item := range result.Items {
		data[i] = item.ToAny()
	}
	return listResponse{
		Data: data,
		Meta: responseMeta{Page: page, Limit: limit, Total: result.Total},
	}
}

// idLabel names the identifier in validation errors: "User id".
func idLabel(ent repository.Entity) string {
	return ent.Type + " id"
}
