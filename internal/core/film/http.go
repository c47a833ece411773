// Copyright (c) 2026 Palmares. All rights reserved.

package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/openscreen/palmares/internal/platform/request"
	"github.com/openscreen/palmares/internal/platform/respond"
	"github.com/openscreen/palmares/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listFilms)
	router.Get("/{id}", handler.getFilm)
}

func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	films, total, err := handler.service.ListFilms(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, films, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	filmID := requestutil.Param(request, "id")
	locale := requestutil.Query(request, "locale")

	detail, err := handler.service.GetFilm(request.Context(), filmID, locale)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}
