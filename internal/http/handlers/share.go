package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/makeadle/dle-service/internal/domain/catalog"
)

const qrSize = 256

// ShareQR renders a PNG QR code linking to a topic's mode page.
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.Catalog(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	mode, ok := catalog.ModeByPath(cat.Modes, r.URL.Query().Get("mode"))
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown mode", h.logger)
		return
	}

	png, err := qrcode.Encode(h.publicURL+catalog.ModePath(cat.Topic.Slug, mode), qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "qr generation failed", h.logger)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
