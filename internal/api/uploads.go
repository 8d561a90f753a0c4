package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/halvard/skald/internal/apperr"
)

const maxUploadBytes = 20 << 20 // 20 MB

// UploadImage handles POST /admin/upload-image (multipart/form-data,
// field "file"). The declared content type must be an image media type;
// file contents are not inspected.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read file"))
		return
	}

	ref, err := h.svc.UploadImage(r.Context(), header.Header.Get("Content-Type"), header.Filename, data)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody("file must be an image"))
		} else {
			slog.Error("upload image failed", slog.String("filename", header.Filename), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{URL: ref})
}

// SaveImageURL handles POST /admin/save-image-url: an externally-hosted
// image is recorded by URL, unchanged.
func (h *Handler) SaveImageURL(w http.ResponseWriter, r *http.Request) {
	var req ImageURLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	ref, err := h.svc.RegisterImageURL(r.Context(), req.ImageURL)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid URL format"))
		} else {
			slog.Error("save image url failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{URL: ref})
}
