// Package http provides the HTTP transport for the attendance ingestion pipeline
package http

import (
	stdhttp "net/http"

	"attendance/internal/modkit/httpkit"
	"attendance/internal/services/attendance/domain"
)

// Register mounts the attendance endpoints on the given router
func Register(r httpkit.Router, ingest domain.IngestPort) {
	h := &handlers{port: ingest}
	httpkit.PostJSON[IngressInput](r, "/ingress", h.ingest)
}

type handlers struct{ port domain.IngestPort }

// swagger:route POST /attendance/ingress Attendance ingestAttendance
// @Summary Submit one edge recognition ingress for dedup, policy evaluation, and ledger append
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body IngressInput true "Recognition ingress"
// @Success 200 {object} OutcomeResponse "ok"
// @Router /attendance/ingress [post]
func (h *handlers) ingest(r *stdhttp.Request, in IngressInput) (any, error) {
	out, err := h.port.Ingest(r.Context(), in.toDomain())
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}
