package api

import (
	"github.com/VoidMesh/galaxy/internal/params"
	"github.com/VoidMesh/galaxy/internal/pointcloud"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ParametersResponse struct {
	Parameters params.Set              `json:"parameters"`
	Ranges     map[string]params.Range `json:"ranges"`
}

// ChangeResponse is returned by every call that edits the live parameters.
type ChangeResponse struct {
	Parameters  params.Set `json:"parameters"`
	Changed     []string   `json:"changed"`
	Regenerated []string   `json:"regenerated"`
}

type CloudSummary struct {
	Name   string            `json:"name"`
	Handle pointcloud.Handle `json:"handle"`
	Count  int               `json:"count"`
}

type CloudResponse struct {
	Name      string            `json:"name"`
	Handle    pointcloud.Handle `json:"handle"`
	Stats     pointcloud.Stats  `json:"stats"`
	Positions []float32         `json:"positions"`
	Colors    []float32         `json:"colors"`
}

type SavePresetRequest struct {
	Name string `json:"name"`
	// Parameters defaults to the live set when omitted.
	Parameters *params.Set `json:"parameters,omitempty"`
}
