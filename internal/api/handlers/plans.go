package handlers

import (
	"net/http"
	"strconv"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

type PlanHandler struct {
	Sessions *services.Sessions
	Log      *zap.Logger
}

func (h *PlanHandler) session(r *http.Request) *services.Session {
	return h.Sessions.Get(r.Context(), obs.SessionID(r.Context()))
}

// Submit plans a trip for the caller's session. A newer submission on the
// same session wins; the older request answers 409.
func (h *PlanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}

	sess := h.session(r)
	if _, err := sess.Planner.Submit(r.Context(), req.Form()); err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeJSON(w, r, h.Log, http.StatusOK, dto.NewPlanResponse(sess.Planner.Snapshot()))
}

func (h *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Log, http.StatusOK, dto.NewPlanResponse(h.session(r).Planner.Snapshot()))
}

// Reset discards the session's itinerary ("Plan Another Trip").
func (h *PlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.session(r).Planner.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.Log, http.StatusOK, dto.ExportStatusResponse{Exports: h.session(r).Exports.Statuses()})
}

func (h *PlanHandler) ExportText(w http.ResponseWriter, r *http.Request) {
	f, err := h.session(r).Exports.Text(r.Context())
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeFile(w, f.Name, f.ContentType, f.Body)
}

func (h *PlanHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	f, err := h.session(r).Exports.PDF(r.Context())
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	writeFile(w, f.Name, f.ContentType, f.Body)
}

// Share returns the share summary, or a QR code of it with ?format=qr.
func (h *PlanHandler) Share(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	if r.URL.Query().Get("format") == "qr" {
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		f, err := sess.Exports.ShareQR(r.Context(), size)
		if err != nil {
			writeFailure(w, r, h.Log, err)
			return
		}
		writeFile(w, f.Name, f.ContentType, f.Body)
		return
	}

	text, err := sess.Exports.ShareText(r.Context())
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	it, _ := sess.Planner.Current()
	writeJSON(w, r, h.Log, http.StatusOK, dto.ShareResponse{Title: export.ShareTitle(it), Text: text})
}

// Postcard renders the themed postcard. ?ai=false skips the generated scene.
func (h *PlanHandler) Postcard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	useAI := true
	if v := q.Get("ai"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, h.Log, http.StatusBadRequest, "ai must be a boolean")
			return
		}
		useAI = b
	}

	pc, err := h.session(r).Exports.Postcard(r.Context(), export.PostcardOptions{
		ThemeID:     q.Get("theme"),
		UseAI:       useAI,
		Temperature: q.Get("temperature"),
		Condition:   q.Get("condition"),
	})
	if err != nil {
		writeFailure(w, r, h.Log, err)
		return
	}
	w.Header().Set("X-Postcard-Scene", pc.Scene)
	writeFile(w, pc.Filename, "image/png", pc.PNG)
}
