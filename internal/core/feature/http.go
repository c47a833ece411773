// Copyright (c) 2026 Palmares. All rights reserved.

package feature

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/openscreen/palmares/internal/platform/request"
	"github.com/openscreen/palmares/internal/platform/respond"
	"github.com/openscreen/palmares/internal/platform/validate"
	"github.com/openscreen/palmares/pkg/slug"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{scope}", handler.getFeatured)
}

func (handler *Handler) getFeatured(writer http.ResponseWriter, request *http.Request) {
	// Scope values are slugs; normalizing tolerates casing in the path.
	scope := slug.From(requestutil.Param(request, "scope"))

	validator := &validate.Validator{}
	validator.Required("scope", scope).OneOf("scope", scope, string(ScopeDay), string(ScopeWeek), string(ScopeMonth))
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pick, err := handler.service.Featured(request.Context(), Scope(scope), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pick)
}
