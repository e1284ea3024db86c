package api

import (
	"context"
	"net/http"
	"strings"
)

const qrSuffix = ".png"

// QRReader returns stored QR images by key.
type QRReader interface {
	QR(ctx context.Context, key string) ([]byte, error)
}

// QRHandler serves stored QR images.
type QRHandler struct {
	deps QRReader
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(deps QRReader) *QRHandler {
	return &QRHandler{deps: deps}
}

// HandleQR handles GET /qrcodes/{key}.png.
func (h *QRHandler) HandleQR(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_qr"
	file := r.PathValue("file")
	key, ok := strings.CutSuffix(file, qrSuffix)
	if !ok || key == "" {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrBadRequest))
		return
	}
	png, err := h.deps.QR(r.Context(), key)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
