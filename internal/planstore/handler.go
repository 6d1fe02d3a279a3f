package planstore

import (
	"net/http"
	"regexp"
	"time"

	"github.com/2beens/fitcoach/internal/middleware"
	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// StoreFactory builds the store of a single device.
type StoreFactory func(deviceID string) *Store

type Handler struct {
	storeFor StoreFactory
	now      func() time.Time
}

func NewHandler(storeFor StoreFactory) *Handler {
	return &Handler{
		storeFor: storeFor,
		now:      time.Now,
	}
}

type saveResponse struct {
	Item     plan.HistoryItem `json:"item"`
	Degraded bool             `json:"degraded"`
}

type historyResponse struct {
	Items    []plan.HistoryItem `json:"items"`
	Source   Source             `json:"source"`
	Degraded bool               `json:"degraded"`
}

type statsResponse struct {
	Stats   plan.Stats `json:"stats"`
	Summary string     `json:"summary"`
}

type deleteResponse struct {
	Deleted  string `json:"deleted"`
	Degraded bool   `json:"degraded"`
}

// deviceStore resolves the device of the request, minting an id when the
// client did not send one. The id is always echoed back in the response.
func (h *Handler) deviceStore(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	deviceID := r.Header.Get(middleware.DeviceIDHeader)
	if deviceID == "" {
		var err error
		deviceID, err = NewDeviceID(h.now())
		if err != nil {
			log.Errorf("mint device id: %s", err)
			pkg.WriteJSONError(w, "Failed to resolve device", http.StatusInternalServerError)
			return nil, false
		}
	} else if !deviceIDPattern.MatchString(deviceID) {
		pkg.WriteJSONError(w, "Invalid device id", http.StatusBadRequest)
		return nil, false
	}

	w.Header().Set(middleware.DeviceIDHeader, deviceID)
	return h.storeFor(deviceID), true
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.save")
	defer span.End()

	p, err := plan.Read(r.Body)
	if err != nil {
		log.Debugf("save plan, invalid body: %s", err)
		pkg.WriteJSONError(w, "Invalid plan provided", http.StatusBadRequest)
		return
	}

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	item, res, err := store.Save(ctx, p)
	if err != nil {
		span.RecordError(err)
		log.Errorf("save plan: %s", err)
		pkg.WriteJSONError(w, "Failed to save plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, saveResponse{Item: item, Degraded: res.Degraded()}, http.StatusCreated)
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.current")
	defer span.End()

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	p, found := store.LoadCurrent(ctx)
	if !found {
		pkg.WriteJSONError(w, "No current plan", http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleCurrentStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.stats")
	defer span.End()

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	p, found := store.LoadCurrent(ctx)
	if !found {
		pkg.WriteJSONError(w, "No current plan", http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, statsResponse{
		Stats:   plan.CalculateStats(p),
		Summary: plan.Summary(p),
	}, http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.history")
	defer span.End()

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	items, res := store.LoadHistory(ctx)
	pkg.WriteJSON(w, historyResponse{
		Items:    items,
		Source:   res.Source,
		Degraded: res.Degraded(),
	}, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		pkg.WriteJSONError(w, "Plan id missing", http.StatusBadRequest)
		return
	}

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	res, err := store.Delete(ctx, id)
	if err != nil {
		span.RecordError(err)
		log.Errorf("delete plan [%s]: %s", id, err)
		pkg.WriteJSONError(w, "Failed to delete plan", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, deleteResponse{Deleted: id, Degraded: res.Degraded()}, http.StatusOK)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.planstore.clear")
	defer span.End()

	store, ok := h.deviceStore(w, r)
	if !ok {
		return
	}

	if err := store.Clear(ctx); err != nil {
		span.RecordError(err)
		log.Errorf("clear plans: %s", err)
		pkg.WriteJSONError(w, "Failed to clear plans", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
