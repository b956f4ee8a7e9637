// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/listing"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/templateform"
	"github.com/learnsphere/admin-console/internal/uikit"
	"github.com/learnsphere/admin-console/internal/upload"
)

// TemplateHandler handles the marketplace template screens.
type TemplateHandler struct {
	api      *api.Client
	renderer *render.Renderer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(client *api.Client, renderer *render.Renderer) *TemplateHandler {
	return &TemplateHandler{api: client, renderer: renderer}
}

// TemplatesListData holds data for the templates list template.
type TemplatesListData struct {
	Templates  []api.Template
	Search     string
	TotalCount int
	Pagination uikit.Pagination
	MediaBase  string
}

// List handles GET /templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.api.ListTemplates(r.Context())
	if err != nil {
		slog.Error("failed to list templates", "category", "template", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	ctl := listing.NewController(templates, TemplatesPerPage, func(t api.Template) []string {
		return []string{t.Name}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := TemplatesListData{
		Templates:  ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), TemplatesPerPage, RouteTemplates, r.URL.Query()),
		MediaBase:  h.api.BaseURL(),
	}

	if err := h.renderer.Render(w, r, "admin/templates_list", pageData(r, "Templates", "templates", data)); err != nil {
		logAndInternalError(w, "failed to render templates list", "error", err)
	}
}

// TemplateFormData holds data for the template authoring form.
type TemplateFormData struct {
	Template   templateform.Template
	Slots      []templateform.Slot
	Errors     map[string]string
	IsEdit     bool
	TemplateID int64
	MediaBase  string
}

// NewForm handles GET /templates/new.
func (h *TemplateHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, TemplateFormData{
		Slots:  templateform.NewSlots(),
		Errors: make(map[string]string),
	})
}

// Create handles POST /templates. Slot actions (add/remove) re-render the
// form; the final submit validates and uploads.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	tmpl, slots, ok := parseTemplateForm(w, r, h.renderer, redirectTemplates)
	if !ok {
		return
	}

	formData := TemplateFormData{Template: tmpl, Slots: slots, Errors: make(map[string]string)}

	if action := r.FormValue("action"); action != "" && action != "submit" {
		formData.Slots = applySlotAction(slots, action)
		h.renderForm(w, r, formData)
		return
	}

	if errs := templateform.Validate(tmpl, slots, true); len(errs) > 0 {
		formData.Errors = errs
		h.renderForm(w, r, formData)
		return
	}

	fields, parts := templateform.ToWireFormat(tmpl, slots)
	if err := h.api.CreateTemplate(r.Context(), fields, parts); err != nil {
		slog.Error("failed to create template", "category", "template", "error", err)
		formData.Errors = map[string]string{"form": api.UserMessage(err)}
		h.renderForm(w, r, formData)
		return
	}

	slog.Info("template created", "category", "template", "name", tmpl.Name)
	flashSuccess(w, r, h.renderer, redirectTemplates, "Template created successfully")
}

// EditForm handles GET /templates/{id}/edit - seeds the slot editor from the
// stored file records.
func (h *TemplateHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectTemplates, "Template not found")
		return
	}

	stored, err := h.api.GetTemplate(r.Context(), id)
	if err != nil {
		slog.Error("failed to get template", "category", "template", "error", err, "template_id", id)
		flashError(w, r, h.renderer, redirectTemplates, api.UserMessage(err))
		return
	}

	h.renderForm(w, r, TemplateFormData{
		Template: templateform.Template{
			Name:          stored.Name,
			Description:   stored.Description,
			Price:         stored.Price,
			ExistingCover: stored.CoverImage,
		},
		Slots:      templateform.SlotsFromExisting(stored.FileRecords()),
		Errors:     make(map[string]string),
		IsEdit:     true,
		TemplateID: id,
	})
}

// Update handles POST /templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectTemplates, "Template not found")
		return
	}

	tmpl, slots, parsed := parseTemplateForm(w, r, h.renderer, redirectTemplates)
	if !parsed {
		return
	}

	formData := TemplateFormData{Template: tmpl, Slots: slots, Errors: make(map[string]string), IsEdit: true, TemplateID: id}

	if action := r.FormValue("action"); action != "" && action != "submit" {
		formData.Slots = applySlotAction(slots, action)
		h.renderForm(w, r, formData)
		return
	}

	if errs := templateform.Validate(tmpl, slots, false); len(errs) > 0 {
		formData.Errors = errs
		h.renderForm(w, r, formData)
		return
	}

	fields, parts := templateform.ToWireFormat(tmpl, slots)
	if err := h.api.UpdateTemplate(r.Context(), id, fields, parts); err != nil {
		slog.Error("failed to update template", "category", "template", "error", err, "template_id", id)
		formData.Errors = map[string]string{"form": api.UserMessage(err)}
		h.renderForm(w, r, formData)
		return
	}

	slog.Info("template updated", "category", "template", "template_id", id)
	flashSuccess(w, r, h.renderer, redirectTemplates, "Template updated successfully")
}

// DeleteForm handles GET /templates/{id}/delete.
func (h *TemplateHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectTemplates, "Template not found")
		return
	}

	stored, err := h.api.GetTemplate(r.Context(), id)
	if err != nil {
		slog.Error("failed to get template", "category", "template", "error", err, "template_id", id)
		flashError(w, r, h.renderer, redirectTemplates, api.UserMessage(err))
		return
	}

	data := DeleteConfirmData{
		EntityType: "template",
		Name:       stored.Name,
		ActionURL:  fmt.Sprintf("%s/%d%s", RouteTemplates, id, RouteSuffixDelete),
		CancelURL:  redirectTemplates,
	}
	if err := h.renderer.Render(w, r, "admin/confirm_delete", pageData(r, "Delete Template", "templates", data)); err != nil {
		logAndInternalError(w, "failed to render confirmation", "error", err)
	}
}

// Delete handles POST /templates/{id}/delete.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectTemplates, "Template not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectTemplates) {
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, redirectTemplates, http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteTemplate(r.Context(), id); err != nil {
		slog.Error("failed to delete template", "category", "template", "error", err, "template_id", id)
		flashError(w, r, h.renderer, redirectTemplates, api.UserMessage(err))
		return
	}

	slog.Info("template deleted", "category", "template", "template_id", id)
	flashSuccess(w, r, h.renderer, redirectTemplates, "Template deleted successfully")
}

func (h *TemplateHandler) renderForm(w http.ResponseWriter, r *http.Request, data TemplateFormData) {
	data.MediaBase = h.api.BaseURL()
	if data.Errors == nil {
		data.Errors = make(map[string]string)
	}
	title := "Add Template"
	if data.IsEdit {
		title = "Edit Template"
	}
	if err := h.renderer.Render(w, r, "admin/templates_form", pageData(r, title, "templates", data)); err != nil {
		logAndInternalError(w, "failed to render template form", "error", err)
	}
}

// parseTemplateForm reconstructs the slot editor state from a posted form.
// Slot ids travel in repeated slot_id fields; kept existing file records ride
// in hidden slot_existing_{id} fields.
func parseTemplateForm(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) (templateform.Template, []templateform.Slot, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return templateform.Template{}, nil, false
	}

	tmpl := templateform.Template{
		Name:          strings.TrimSpace(r.FormValue("template_name")),
		Description:   r.FormValue("template_description"),
		Price:         strings.TrimSpace(r.FormValue("template_price")),
		ExistingCover: r.FormValue("existing_cover"),
	}

	var err error
	if tmpl.Cover, err = upload.FromRequest(r, "cover_image"); err != nil {
		flashError(w, r, renderer, redirectURL, err.Error())
		return templateform.Template{}, nil, false
	}

	ids := r.Form["slot_id"]
	slots := make([]templateform.Slot, 0, len(ids))
	for _, raw := range ids {
		id, convErr := strconv.Atoi(raw)
		if convErr != nil {
			continue
		}
		slot := templateform.Slot{ID: id}
		if existing := r.FormValue(fmt.Sprintf("slot_existing_%d", id)); existing != "" {
			slot.Existing = json.RawMessage(existing)
		}
		file, ferr := upload.FromRequest(r, fmt.Sprintf("slot_file_%d", id))
		if ferr != nil {
			flashError(w, r, renderer, redirectURL, ferr.Error())
			return templateform.Template{}, nil, false
		}
		slot.File = file
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		slots = templateform.NewSlots()
	}

	return tmpl, slots, true
}

// applySlotAction maps a form button press onto a slot operation.
// Action grammar: add_slot | remove_slot:{id}
func applySlotAction(slots []templateform.Slot, action string) []templateform.Slot {
	name, args, _ := strings.Cut(action, ":")
	switch name {
	case "add_slot":
		return templateform.AddSlot(slots)
	case "remove_slot":
		if id, err := strconv.Atoi(args); err == nil {
			return templateform.RemoveSlot(slots, id)
		}
	}
	return slots
}
