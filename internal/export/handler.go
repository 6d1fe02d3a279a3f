package export

import (
	"net/http"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	exporter *Exporter
	metrics  *metrics.Manager
}

func NewHandler(exporter *Exporter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		exporter: exporter,
		metrics:  metricsManager,
	}
}

func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.export.pdf")
	defer span.End()

	p, err := plan.Read(r.Body)
	if err != nil {
		log.Debugf("export pdf, invalid plan: %s", err)
		pkg.WriteJSONError(w, "Invalid plan provided", http.StatusBadRequest)
		return
	}

	doc, err := h.exporter.PDF(p)
	if err != nil {
		span.RecordError(err)
		log.Errorf("export pdf: %s", err)
		pkg.WriteJSONError(w, "Failed to export plan", http.StatusInternalServerError)
		return
	}

	h.metrics.CounterPDFExports.Inc()
	w.Header().Set("Content-Disposition", `attachment; filename="fitness-plan.pdf"`)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.PDF, doc)
}
