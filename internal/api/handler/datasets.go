package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/service"
)

// ListDatasets returns the dataset registry.
// @Summary List datasets
// @Description Returns every raw dataset the explorer can browse.
// @Tags datasets
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "datasets", cache.TTLRegistry, func(context.Context) (any, error) {
		return map[string]any{"datasets": h.svc.Datasets()}, nil
	})
}

// GetDatasetSchema returns the columns of a dataset.
// @Summary Get dataset schema
// @Description Returns column names with logical and storage types, inferred from the default years.
// @Tags datasets
// @Produce json
// @Param datasetID path string true "Dataset ID" Enums(seasonal, rosters, teams)
// @Success 200 {object} dataset.Schema
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/datasets/{datasetID}/schema [get]
func (h *Handler) GetDatasetSchema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")
	h.serveCached(w, r, "schema:"+id, cache.TTLCurrentSeason, func(ctx context.Context) (any, error) {
		return h.svc.Schema(ctx, id)
	})
}

// GetDatasetData returns a page of raw rows.
// @Summary Get dataset rows
// @Description Returns raw rows for the given years, projected onto the requested columns. Unknown columns are ignored.
// @Tags datasets
// @Produce json
// @Param datasetID path string true "Dataset ID" Enums(seasonal, rosters, teams)
// @Param years query string false "Comma-separated years, e.g. 2023,2024"
// @Param columns query string false "Comma-separated column names"
// @Param limit query int false "Rows per page (1-10000)" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} dataset.Page
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/datasets/{datasetID}/data [get]
func (h *Handler) GetDatasetData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "datasetID")

	years, err := queryYears(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultDataLimit, 1, maxDataLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, int(^uint(0)>>1))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	columns := queryList(r, "columns")

	key := fmt.Sprintf("data:%s:%s:%s:%d:%d", id, joinInts(years), strings.Join(columns, ","), limit, offset)
	h.serveCached(w, r, key, cache.TTLCurrentSeason, func(ctx context.Context) (any, error) {
		return h.svc.Data(ctx, id, service.DataQuery{
			Years:   years,
			Columns: columns,
			Limit:   limit,
			Offset:  offset,
		})
	})
}
