package api

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/galaxy/internal/color"
	"github.com/VoidMesh/galaxy/internal/db"
	"github.com/VoidMesh/galaxy/internal/display"
	"github.com/VoidMesh/galaxy/internal/params"
	"github.com/VoidMesh/galaxy/internal/pointcloud"
	"github.com/VoidMesh/galaxy/internal/scene"
)

const presetTimeout = 5 * time.Second

type Handler struct {
	surface  *params.Surface
	scene    *scene.Scene
	registry *display.Registry
	presets  *db.PresetStore
}

func NewHandler(surface *params.Surface, sc *scene.Scene, registry *display.Registry, presets *db.PresetStore) *Handler {
	return &Handler{
		surface:  surface,
		scene:    sc,
		registry: registry,
		presets:  presets,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	attached, disposed := h.registry.Counters()
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().Unix(),
		"service":     "galaxy",
		"version":     "1.0.0",
		"live_clouds": h.registry.Live(),
		"attached":    attached,
		"disposed":    disposed,
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetParameters(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ParametersResponse{
		Parameters: h.surface.Current(),
		Ranges:     params.Ranges,
	})
}

func (h *Handler) PatchParameters(w http.ResponseWriter, r *http.Request) {
	var patch params.Patch

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&patch); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	change, err := h.surface.Apply(patch)
	if err != nil {
		h.renderEditError(w, r, "failed to apply parameters", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, changeResponse(change))
}

func (h *Handler) ListClouds(w http.ResponseWriter, r *http.Request) {
	clouds := make([]CloudSummary, 0, len(h.scene.Names()))
	for _, name := range h.scene.Names() {
		snap, err := h.scene.Snapshot(name)
		if err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "failed to list clouds", err)
			return
		}
		clouds = append(clouds, CloudSummary{
			Name:   snap.Name,
			Handle: snap.Handle,
			Count:  snap.Buffer.Len(),
		})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, clouds)
}

func (h *Handler) GetCloud(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CloudResponse{
		Name:      snap.Name,
		Handle:    snap.Handle,
		Stats:     snap.Stats,
		Positions: snap.Buffer.Positions,
		Colors:    snap.Buffer.Colors,
	})
}

// GetCloudBuffer streams the raw buffers: a little-endian uint32 point count
// followed by every position and then every color as float32.
func (h *Handler) GetCloudBuffer(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot(w, r)
	if !ok {
		return
	}

	count := snap.Buffer.Len()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(4+2*pointcloud.Stride*4*count))
	w.Header().Set("X-Point-Count", strconv.Itoa(count))
	w.Header().Set("X-Cloud-Handle", snap.Handle.String())
	w.WriteHeader(http.StatusOK)

	for _, data := range []any{uint32(count), snap.Buffer.Positions, snap.Buffer.Colors} {
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			// headers are gone, all we can do is log
			log.Error("failed to write cloud buffer", "error", err, "cloud", snap.Name)
			return
		}
	}
}

func (h *Handler) RegenerateCloud(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.scene.Regenerate(name); err != nil {
		if errors.Is(err, scene.ErrUnknownCloud) {
			h.renderError(w, r, http.StatusNotFound, "unknown cloud", err)
			return
		}
		h.renderEditError(w, r, "failed to regenerate cloud", err)
		return
	}

	snap, err := h.scene.Snapshot(name)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to read cloud", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CloudSummary{
		Name:   snap.Name,
		Handle: snap.Handle,
		Count:  snap.Buffer.Len(),
	})
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), presetTimeout)
	defer cancel()

	presets, err := h.presets.ListPresets(ctx)
	if err != nil {
		log.Error("failed to list presets", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list presets", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, presets)
}

func (h *Handler) SavePreset(w http.ResponseWriter, r *http.Request) {
	var req SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	set := h.surface.Current()
	if req.Parameters != nil {
		set = req.Parameters.Clamp()
		if err := set.Validate(); err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid preset parameters", err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), presetTimeout)
	defer cancel()

	preset, err := h.presets.SavePreset(ctx, req.Name, set)
	if err != nil {
		if errors.Is(err, db.ErrInvalidPresetName) {
			h.renderError(w, r, http.StatusBadRequest, "invalid preset name", err)
			return
		}
		log.Error("failed to save preset", "error", err, "preset", req.Name)
		h.renderError(w, r, http.StatusInternalServerError, "failed to save preset", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, preset)
}

func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, ok := h.loadPreset(w, r)
	if !ok {
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, preset)
}

func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ctx, cancel := context.WithTimeout(r.Context(), presetTimeout)
	defer cancel()

	if err := h.presets.DeletePreset(ctx, name); err != nil {
		if errors.Is(err, db.ErrPresetNotFound) {
			h.renderError(w, r, http.StatusNotFound, "preset not found", err)
			return
		}
		log.Error("failed to delete preset", "error", err, "preset", name)
		h.renderError(w, r, http.StatusInternalServerError, "failed to delete preset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApplyPreset replaces the live parameters with a saved preset.
func (h *Handler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	preset, ok := h.loadPreset(w, r)
	if !ok {
		return
	}

	change, err := h.surface.Replace(preset.Parameters)
	if err != nil {
		h.renderEditError(w, r, "failed to apply preset", err)
		return
	}

	log.Info("Applied preset", "preset", preset.Name, "changed", change.Fields)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, changeResponse(change))
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (scene.Snapshot, bool) {
	snap, err := h.scene.Snapshot(chi.URLParam(r, "name"))
	if err != nil {
		h.renderError(w, r, http.StatusNotFound, "unknown cloud", err)
		return scene.Snapshot{}, false
	}
	if snap.Buffer == nil {
		h.renderError(w, r, http.StatusNotFound, "cloud has not been generated", nil)
		return scene.Snapshot{}, false
	}
	return snap, true
}

func (h *Handler) loadPreset(w http.ResponseWriter, r *http.Request) (*db.Preset, bool) {
	name := chi.URLParam(r, "name")

	ctx, cancel := context.WithTimeout(r.Context(), presetTimeout)
	defer cancel()

	preset, err := h.presets.GetPreset(ctx, name)
	if err != nil {
		if errors.Is(err, db.ErrPresetNotFound) {
			h.renderError(w, r, http.StatusNotFound, "preset not found", err)
			return nil, false
		}
		log.Error("failed to load preset", "error", err, "preset", name)
		h.renderError(w, r, http.StatusInternalServerError, "failed to load preset", err)
		return nil, false
	}
	return preset, true
}

// renderEditError maps failures from the parameter surface and the generators.
func (h *Handler) renderEditError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, color.ErrInvalidColor):
		h.renderError(w, r, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, pointcloud.ErrInvalidParameter):
		h.renderError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	default:
		h.renderError(w, r, http.StatusInternalServerError, message, err)
	}
}

func changeResponse(change params.Change) ChangeResponse {
	regenerated := []string{}
	if change.Galaxy {
		regenerated = append(regenerated, scene.GalaxyCloud)
	}
	if change.Stars {
		regenerated = append(regenerated, scene.StarsCloud)
	}

	changed := change.Fields
	if changed == nil {
		changed = []string{}
	}

	return ChangeResponse{
		Parameters:  change.Current,
		Changed:     changed,
		Regenerated: regenerated,
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	renderError(w, r, status, message, err)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
