// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/imaging"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/upload"
	"github.com/learnsphere/admin-console/internal/util"
)

var contactNoRegex = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)

// SettingsHandler handles the site settings and logo screens.
type SettingsHandler struct {
	api       *api.Client
	renderer  *render.Renderer
	processor *imaging.Processor
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(client *api.Client, renderer *render.Renderer, processor *imaging.Processor) *SettingsHandler {
	return &SettingsHandler{api: client, renderer: renderer, processor: processor}
}

// SettingsFormData holds data for the settings template.
type SettingsFormData struct {
	Settings  api.Settings
	Errors    map[string]string
	IsNew     bool
	MediaBase string
}

// EditForm handles GET /settings. The backend keeps at most one record; when
// none exists the form starts blank and the save creates it.
func (h *SettingsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	settings, isNew, err := h.fetchOrBlank(r)
	if err != nil {
		slog.Error("failed to load settings", "category", "config", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	h.renderForm(w, r, SettingsFormData{Settings: settings, IsNew: isNew, Errors: make(map[string]string)})
}

// Update handles POST /settings - creates the record on first save,
// updates it afterwards.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectSettings) {
		return
	}

	current, isNew, err := h.fetchOrBlank(r)
	if err != nil {
		slog.Error("failed to load settings", "category", "config", "error", err)
		flashError(w, r, h.renderer, redirectSettings, api.UserMessage(err))
		return
	}

	submitted := api.Settings{
		ID:              current.ID,
		SiteName:        strings.TrimSpace(r.FormValue("site_name")),
		SiteDescription: r.FormValue("site_description"),
		ContactMail:     strings.TrimSpace(r.FormValue("contact_mail")),
		ContactNo:       strings.TrimSpace(r.FormValue("contact_no")),
		LocationURL:     strings.TrimSpace(r.FormValue("location_url")),
	}

	if errs := validateSettings(submitted); len(errs) > 0 {
		h.renderForm(w, r, SettingsFormData{Settings: submitted, IsNew: isNew, Errors: errs})
		return
	}

	if isNew {
		_, err = h.api.CreateSettings(r.Context(), submitted)
	} else {
		_, err = h.api.UpdateSettings(r.Context(), current.ID, submitted)
	}
	if err != nil {
		slog.Error("failed to save settings", "category", "config", "error", err)
		h.renderForm(w, r, SettingsFormData{Settings: submitted, IsNew: isNew,
			Errors: map[string]string{"form": api.UserMessage(err)}})
		return
	}

	slog.Info("settings saved", "category", "config", "site_name", submitted.SiteName)
	flashSuccess(w, r, h.renderer, redirectSettings, "Settings saved successfully")
}

// LogoFormData holds data for the logo template.
type LogoFormData struct {
	CurrentLogo string
	MediaBase   string
}

// LogoForm handles GET /settings/logo.
func (h *SettingsHandler) LogoForm(w http.ResponseWriter, r *http.Request) {
	settings, _, err := h.fetchOrBlank(r)
	if err != nil {
		slog.Error("failed to load settings", "category", "config", "error", err)
		flashError(w, r, h.renderer, redirectSettings, api.UserMessage(err))
		return
	}

	data := LogoFormData{CurrentLogo: settings.SiteLogo, MediaBase: h.api.BaseURL()}
	if err := h.renderer.Render(w, r, "admin/logo_form", pageData(r, "Site Logo", "settings", data)); err != nil {
		logAndInternalError(w, "failed to render logo form", "error", err)
	}
}

// UploadLogo handles POST /settings/logo - downscales the image in memory
// before forwarding it to the backend.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, h.renderer, redirectLogo, "Invalid form data")
		return
	}

	file, err := upload.FromRequest(r, "site_logo")
	if err != nil {
		flashError(w, r, h.renderer, redirectLogo, err.Error())
		return
	}
	if file == nil {
		flashError(w, r, h.renderer, redirectLogo, "Please choose an image")
		return
	}
	if !h.processor.IsImage(h.processor.DetectMimeType(file.Data)) {
		flashError(w, r, h.renderer, redirectLogo, "Unsupported image type")
		return
	}

	processed, err := h.processor.Prepare(bytes.NewReader(file.Data), file.Name, imaging.LogoBounds)
	if err != nil {
		slog.Error("failed to process logo", "category", "config", "error", err)
		flashError(w, r, h.renderer, redirectLogo, "Could not process the image")
		return
	}

	part := upload.Part{
		Field: "site_logo",
		File: upload.FileRef{
			Name:        slugFilename(processed.Filename),
			ContentType: processed.MimeType,
			Data:        processed.Data,
		},
	}
	if err := h.api.UploadSiteImages(r.Context(), []upload.Part{part}); err != nil {
		slog.Error("failed to upload logo", "category", "config", "error", err)
		flashError(w, r, h.renderer, redirectLogo, api.UserMessage(err))
		return
	}

	slog.Info("site logo updated", "category", "config", "size", len(processed.Data))
	flashSuccess(w, r, h.renderer, redirectLogo, "Logo updated successfully")
}

func (h *SettingsHandler) renderForm(w http.ResponseWriter, r *http.Request, data SettingsFormData) {
	data.MediaBase = h.api.BaseURL()
	if data.Errors == nil {
		data.Errors = make(map[string]string)
	}
	if err := h.renderer.Render(w, r, "admin/settings_form", pageData(r, "Site Settings", "settings", data)); err != nil {
		logAndInternalError(w, "failed to render settings form", "error", err)
	}
}

// fetchOrBlank returns the single settings record, or a blank one when none
// has been created yet.
func (h *SettingsHandler) fetchOrBlank(r *http.Request) (api.Settings, bool, error) {
	all, err := h.api.ListSettings(r.Context())
	if err != nil {
		if api.IsNotFound(err) {
			return api.Settings{}, true, nil
		}
		return api.Settings{}, false, err
	}
	if len(all) == 0 {
		return api.Settings{}, true, nil
	}
	return all[0], false, nil
}

func validateSettings(s api.Settings) map[string]string {
	errs := make(map[string]string)
	if s.SiteName == "" {
		errs["site_name"] = "Site name is required"
	}
	if s.ContactMail != "" && !strings.Contains(s.ContactMail, "@") {
		errs["contact_mail"] = "Enter a valid email address"
	}
	if s.ContactNo != "" && !contactNoRegex.MatchString(s.ContactNo) {
		errs["contact_no"] = "Enter a valid contact number"
	}
	return errs
}

// slugFilename normalizes an upload filename: slugged stem, original
// extension.
func slugFilename(name string) string {
	ext := filepath.Ext(name)
	stem := util.Slugify(strings.TrimSuffix(name, ext))
	if stem == "" {
		stem = "file"
	}
	return stem + strings.ToLower(ext)
}
