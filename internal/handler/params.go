package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"printlab/internal/repository"
)

// listParamsFromQuery reads the shared {page, limit, sortBy, order, search}
// query parameters. Values are clamped downstream.
func listParamsFromQuery(c echo.Context) repository.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.ListParams{
		Page:   page,
		Limit:  limit,
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
		Search: c.QueryParam("search"),
	}
}

// pagedResponse is the envelope for paginated list endpoints.
type pagedResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func newPagedResponse(data interface{}, total int64, params repository.ListParams) pagedResponse {
	params = params.Normalize()
	return pagedResponse{
		Data:  data,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	}
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(400, "invalid id")
	}
	return uint(id), nil
}
