package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"omnichat/backend/internal/interfaces"
	"omnichat/backend/internal/registry"
)

// SettingsHandler exposes the provider catalog, the provider/model selection
// and the credential slot.
type SettingsHandler struct {
	selection   interfaces.SelectionService
	credentials interfaces.CredentialService
}

func NewSettingsHandler(selection interfaces.SelectionService, credentials interfaces.CredentialService) *SettingsHandler {
	return &SettingsHandler{selection: selection, credentials: credentials}
}

// providerInfo is the catalog entry returned to the selector UI.
type providerInfo struct {
	Name         string                 `json:"name"`
	Models       []registry.ModelOption `json:"models"`
	DefaultModel string                 `json:"default_model"`
}

// GetProviders godoc
// @Summary      List providers and their models
// @Tags         Settings
// @Produce      json
// @Success      200  {array}  providerInfo
// @Router       /providers [get]
func (h *SettingsHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	names := registry.Providers()
	out := make([]providerInfo, 0, len(names))
	for _, name := range names {
		// The catalog is fixed, so lookups on its own names cannot fail.
		models, _ := registry.ListModels(name)
		defaultModel, _ := registry.DefaultModel(name)
		out = append(out, providerInfo{Name: name, Models: models, DefaultModel: defaultModel})
	}
	respondWithJSON(w, http.StatusOK, out)
}

// GetProviderModels godoc
// @Summary      List the models of one provider
// @Tags         Settings
// @Produce      json
// @Param        provider  path  string  true  "Provider name"
// @Success      200  {array}  registry.ModelOption
// @Failure      404  {object}  ErrorResponse
// @Router       /providers/{provider}/models [get]
func (h *SettingsHandler) GetProviderModels(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	if !registry.IsKnown(provider) {
		respondWithJSON(w, http.StatusNotFound, ErrorResponse{Error: "Unknown provider."})
		return
	}
	models, _ := registry.ListModels(provider)
	respondWithJSON(w, http.StatusOK, models)
}

// GetSelection godoc
// @Summary      Get the current provider/model selection
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  service.Selection
// @Router       /selection [get]
func (h *SettingsHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.selection.Get())
}

// SetProvider godoc
// @Summary      Switch provider
// @Description  Switches the provider and resets the model to the provider's default.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        selection  body  SetProviderRequest  true  "Provider"
// @Success      200  {object}  service.Selection
// @Failure      400  {object}  ErrorResponse
// @Router       /selection/provider [put]
func (h *SettingsHandler) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req SetProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errInvalidBody(err))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	sel, err := h.selection.SetProvider(r.Context(), req.Provider)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sel)
}

// SetModel godoc
// @Summary      Switch model
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        selection  body  SetModelRequest  true  "Model"
// @Success      200  {object}  service.Selection
// @Failure      400  {object}  ErrorResponse
// @Router       /selection/model [put]
func (h *SettingsHandler) SetModel(w http.ResponseWriter, r *http.Request) {
	var req SetModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errInvalidBody(err))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	sel, err := h.selection.SetModel(r.Context(), req.Model)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, sel)
}

// SaveKey godoc
// @Summary      Save the API key
// @Description  Persists the key to the local slot and forwards it to the upstream key-storage endpoint.
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        key  body  SaveKeyRequest  true  "API key"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /keys [post]
func (h *SettingsHandler) SaveKey(w http.ResponseWriter, r *http.Request) {
	var req SaveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errInvalidBody(err))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.credentials.Save(r.Context(), req.APIKey); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
