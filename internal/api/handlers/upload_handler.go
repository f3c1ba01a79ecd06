// filepath: internal/api/handlers/upload_handler.go
package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/KodyMike/DropZone/internal/logging"
	"github.com/KodyMike/DropZone/internal/services"
)

// UploadFile accepts a multipart/form-data POST containing a single part
// named 'file' and stores it. The body is consumed as a stream: the file
// part is handed to the upload service without being buffered, so the size
// limit is enforced on the bytes actually transferred rather than on the
// client-supplied Content-Length.
func (h *Handlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		respondWithError(w, http.StatusBadRequest, "Expected multipart/form-data.")
		return
	}

	mr, err := r.MultipartReader()
	if err != nil {
		logging.Log.Warnf("UploadFile: Failed to open multipart reader: %v", err)
		respondWithError(w, http.StatusBadRequest, "Malformed multipart body.")
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			logging.Log.Warnf("UploadFile: Malformed multipart framing: %v", err)
			respondWithError(w, http.StatusBadRequest, "Malformed multipart body.")
			return
		}

		if part.FormName() != "file" {
			// Ignore unrelated parts; NextPart drains the current one.
			part.Close()
			continue
		}

		stored, err := h.Upload.StoreUpload(r.Context(), part.FileName(), part)
		part.Close()
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				respondWithError(w, http.StatusBadRequest, "Invalid upload.")
			} else if errors.Is(err, services.ErrTooLarge) {
				respondWithError(w, http.StatusRequestEntityTooLarge, "Payload too large.")
			} else {
				// Storage failures stay generic: no paths or internals in the response.
				logging.Log.Errorf("UploadFile: Failed to store upload: %v", err)
				respondWithError(w, http.StatusInternalServerError, "Failed to store upload.")
			}
			return
		}

		h.Auditor.Log(r.Context(), "upload.store", stored.Filename, map[string]interface{}{
			"size_bytes": stored.SizeBytes,
			"routed":     stored.Routed,
			"remote":     r.RemoteAddr,
		})

		respondWithJSON(w, http.StatusOK, UploadResponse{
			Filename:  stored.Filename,
			SizeBytes: stored.SizeBytes,
		})
		return
	}

	respondWithError(w, http.StatusBadRequest, "Missing 'file' part in multipart form.")
}
