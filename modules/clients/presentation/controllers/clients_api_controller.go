package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/domain/entities/reciprocal"
	"github.com/praxishq/praxis/modules/clients/services"
	"github.com/praxishq/praxis/pkg/application"
	"github.com/praxishq/praxis/pkg/composables"
	"github.com/praxishq/praxis/pkg/configuration"
	"github.com/praxishq/praxis/pkg/httpapi"
	"github.com/praxishq/praxis/pkg/middleware"
)

// ClientsAPIController exposes the client store over JSON: CRUD, spreadsheet
// import and the reciprocal-relationship review queue.
type ClientsAPIController struct {
	clientService   *services.ClientService
	importService   *services.ImportService
	reciprocalSvc   *services.ReciprocalService
	basePath        string
	maxUploadSize   int64
	maxUploadMemory int64
}

func NewClientsAPIController(app application.Application) application.Controller {
	conf := configuration.Use()
	return &ClientsAPIController{
		clientService:   app.Service(services.ClientService{}).(*services.ClientService),
		importService:   app.Service(services.ImportService{}).(*services.ImportService),
		reciprocalSvc:   app.Service(services.ReciprocalService{}).(*services.ReciprocalService),
		basePath:        "/api/v1",
		maxUploadSize:   conf.MaxUploadSize,
		maxUploadMemory: conf.MaxUploadMemory,
	}
}

func (c *ClientsAPIController) Key() string {
	return c.basePath
}

func (c *ClientsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/clients", c.list).Methods(http.MethodGet)
	router.HandleFunc("/clients/{id}", c.get).Methods(http.MethodGet)
	router.HandleFunc("/reciprocals/current", c.currentTask).Methods(http.MethodGet)

	// Save paths run in a transaction so the store write and the
	// reciprocal diff read the same snapshot.
	tx := r.PathPrefix(c.basePath).Subrouter()
	tx.Use(middleware.WithTransaction())
	tx.HandleFunc("/clients", c.create).Methods(http.MethodPost)
	tx.HandleFunc("/clients/{id}", c.update).Methods(http.MethodPut)

	// Import and reciprocal confirmation manage their own transactions.
	router.HandleFunc("/clients/import", c.importFile).Methods(http.MethodPost)
	router.HandleFunc("/reciprocals/current/confirm", c.confirmTask).Methods(http.MethodPost)
	router.HandleFunc("/reciprocals/current/skip", c.skipTask).Methods(http.MethodPost)
}

type clientResponse struct {
	ID            uuid.UUID                `json:"id"`
	FirstName     string                   `json:"firstName"`
	LastName      string                   `json:"lastName"`
	PreferredName string                   `json:"preferredName,omitempty"`
	DisplayName   string                   `json:"displayName"`
	Email         string                   `json:"email,omitempty"`
	Phone         string                   `json:"phone,omitempty"`
	DateOfBirth   string                   `json:"dateOfBirth,omitempty"`
	Relationships []client.RelationshipDTO `json:"relationships"`
	Sessions      int                      `json:"sessions"`
}

func toResponse(entity client.Client) *clientResponse {
	rels := entity.Relationships()
	dtos := make([]client.RelationshipDTO, 0, len(rels))
	for _, rel := range rels {
		dtos = append(dtos, client.RelationshipDTO{
			RelatedClientID: rel.RelatedClientID.String(),
			Type:            rel.Type,
		})
	}
	return &clientResponse{
		ID:            entity.ID(),
		FirstName:     entity.FirstName(),
		LastName:      entity.LastName(),
		PreferredName: entity.PreferredName(),
		DisplayName:   entity.DisplayName(),
		Email:         entity.Email(),
		Phone:         entity.Phone(),
		DateOfBirth:   entity.DateOfBirth(),
		Relationships: dtos,
		Sessions:      entity.Sessions(),
	}
}

type listResponse struct {
	Items []*clientResponse `json:"items"`
	Total int64             `json:"total"`
}

func (c *ClientsAPIController) list(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()
	params := &client.FindParams{
		Q:     r.URL.Query().Get("q"),
		Limit: conf.PageSize,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > conf.MaxPageSize {
			httpapi.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer", nil)
			return
		}
		params.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			httpapi.WriteError(w, http.StatusBadRequest, "INVALID_OFFSET", "offset must be a non-negative integer", nil)
			return
		}
		params.Offset = offset
	}

	entities, total, err := c.clientService.GetPaginated(r.Context(), params)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	items := make([]*clientResponse, 0, len(entities))
	for _, entity := range entities {
		items = append(items, toResponse(entity))
	}
	httpapi.WriteJSON(w, http.StatusOK, &listResponse{Items: items, Total: total})
}

func (c *ClientsAPIController) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	entity, err := c.clientService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toResponse(entity))
}

func (c *ClientsAPIController) create(w http.ResponseWriter, r *http.Request) {
	dto := &client.CreateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", nil)
		return
	}
	if fieldErrors, ok := dto.Ok(); !ok {
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", fieldErrors)
		return
	}

	created, err := c.clientService.Create(r.Context(), dto)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toResponse(created))
}

func (c *ClientsAPIController) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be a UUID", nil)
		return
	}
	dto := &client.UpdateDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", nil)
		return
	}
	if fieldErrors, ok := dto.Ok(); !ok {
		httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "validation failed", fieldErrors)
		return
	}

	updated, err := c.clientService.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "client not found", nil)
			return
		}
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toResponse(updated))
}

func (c *ClientsAPIController) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadSize)
	if err := r.ParseMultipartForm(c.maxUploadMemory); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "expected a multipart upload with a 'file' field", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "INVALID_UPLOAD", "expected a multipart upload with a 'file' field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	report, err := c.importService.Import(r.Context(), file, header.Filename)
	if err != nil {
		if len(report.Diagnostics) > 0 {
			// Parse failures are reported, not 500s: the file is the problem.
			httpapi.WriteJSON(w, http.StatusUnprocessableEntity, report)
			return
		}
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, report)
}

type reciprocalTaskResponse struct {
	SourceID    uuid.UUID `json:"sourceId"`
	TargetID    uuid.UUID `json:"targetId"`
	SourceName  string    `json:"sourceName"`
	TargetName  string    `json:"targetName"`
	InitialType string    `json:"initialType"`
	Pending     int       `json:"pending"`
}

func toTaskResponse(task reciprocal.Task, pending int) *reciprocalTaskResponse {
	return &reciprocalTaskResponse{
		SourceID:    task.SourceID,
		TargetID:    task.TargetID,
		SourceName:  task.SourceName,
		TargetName:  task.TargetName,
		InitialType: task.InitialType,
		Pending:     pending,
	}
}

func (c *ClientsAPIController) currentTask(w http.ResponseWriter, r *http.Request) {
	task, ok := c.reciprocalSvc.PeekCurrent()
	if !ok {
		httpapi.WriteError(w, http.StatusNotFound, "NO_PENDING_TASK", "no pending reciprocal task", nil)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toTaskResponse(task, c.reciprocalSvc.Pending()))
}

type confirmRequest struct {
	Type string `json:"type"`
}

func (c *ClientsAPIController) confirmTask(w http.ResponseWriter, r *http.Request) {
	req := &confirmRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", nil)
			return
		}
	}
	if err := c.reciprocalSvc.Confirm(r.Context(), req.Type); err != nil {
		if errors.Is(err, services.ErrNoCurrentTask) {
			httpapi.WriteError(w, http.StatusNotFound, "NO_PENDING_TASK", "no pending reciprocal task", nil)
			return
		}
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]int{"pending": c.reciprocalSvc.Pending()})
}

func (c *ClientsAPIController) skipTask(w http.ResponseWriter, r *http.Request) {
	if err := c.reciprocalSvc.Skip(); err != nil {
		if errors.Is(err, services.ErrNoCurrentTask) {
			httpapi.WriteError(w, http.StatusNotFound, "NO_PENDING_TASK", "no pending reciprocal task", nil)
			return
		}
		c.internalError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]int{"pending": c.reciprocalSvc.Pending()})
}

func (c *ClientsAPIController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	composables.UseLogger(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("request failed")
	httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
}
