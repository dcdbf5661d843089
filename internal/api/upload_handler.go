package api

import (
	"fmt"
	"net/http"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/interfaces"
)

// UploadHandler receives the multipart upload from the browser and hands it
// to the upload service.
type UploadHandler struct {
	service  interfaces.UploadService
	maxBytes int64
}

func NewUploadHandler(svc interfaces.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: svc, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Upload a file for text extraction
// @Description  Forwards the file to the extraction endpoint and appends the result to the active conversation.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to extract text from"
// @Success      200  {object}  service.UploadResult
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: no file uploaded", app_errors.ErrValidation))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
