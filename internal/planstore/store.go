package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const MaxHistory = 10

type RemoteStatus string

const (
	RemoteDisabled RemoteStatus = "disabled"
	RemoteOK       RemoteStatus = "ok"
	RemoteFailed   RemoteStatus = "failed"
)

type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Result reports how the remote tier behaved during an operation.
// Remote failures never surface as errors, only here.
type Result struct {
	Remote    RemoteStatus
	RemoteErr error
	Source    Source
}

func (r Result) Degraded() bool {
	return r.Remote == RemoteFailed
}

type NewStoreParams struct {
	Local   KV
	Remote  Remote
	UserID  string
	Metrics *metrics.Manager
	Now     func() time.Time
}

// Store persists plans in the local tier and mirrors them to the remote
// tier when one is configured.
type Store struct {
	local   KV
	remote  Remote
	userID  string
	metrics *metrics.Manager
	now     func() time.Time
}

func NewStore(params NewStoreParams) *Store {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		local:   params.Local,
		remote:  params.Remote,
		userID:  params.UserID,
		metrics: params.Metrics,
		now:     now,
	}
}

func (s *Store) Save(ctx context.Context, p *plan.GeneratedPlan) (_ plan.HistoryItem, _ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planstore.save")
	defer tracing.EndSpan(span, &err)

	if p == nil {
		return plan.HistoryItem{}, Result{}, errors.New("plan is nil")
	}

	planJSON, err := json.Marshal(p)
	if err != nil {
		return plan.HistoryItem{}, Result{}, fmt.Errorf("marshal plan: %w", err)
	}
	if err := s.local.Set(ctx, KeyCurrentPlan, string(planJSON)); err != nil {
		return plan.HistoryItem{}, Result{}, fmt.Errorf("save current plan: %w", err)
	}

	now := s.now().UTC()
	id, err := newHistoryID(now)
	if err != nil {
		return plan.HistoryItem{}, Result{}, fmt.Errorf("history id: %w", err)
	}

	item := plan.HistoryItem{
		ID:      id,
		Plan:    *p,
		SavedAt: now,
	}
	history := append([]plan.HistoryItem{item}, s.localHistory(ctx)...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	if err := s.writeHistory(ctx, history); err != nil {
		return plan.HistoryItem{}, Result{}, err
	}

	if s.metrics != nil {
		s.metrics.CounterPlansSaved.Inc()
	}

	res := Result{Remote: RemoteDisabled, Source: SourceLocal}
	if s.remote != nil {
		if _, err := s.remote.Insert(ctx, s.userID, p); err != nil {
			res.Remote, res.RemoteErr = RemoteFailed, err
			s.remoteFailed("insert", err)
		} else {
			res.Remote = RemoteOK
		}
	}

	log.Debugf("plan saved [%s] for [%s], remote: %s", item.ID, s.userID, res.Remote)
	return item, res, nil
}

// LoadCurrent returns the most recently saved plan. A missing or unreadable
// entry is reported as absent.
func (s *Store) LoadCurrent(ctx context.Context) (*plan.GeneratedPlan, bool) {
	raw, found, err := s.local.Get(ctx, KeyCurrentPlan)
	if err != nil {
		log.Errorf("load current plan: %s", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	p, err := plan.Decode([]byte(raw))
	if err != nil {
		log.Errorf("load current plan, stored value unreadable: %s", err)
		return nil, false
	}
	return p, true
}

// LoadHistory returns saved plans newest first. A non-empty remote listing
// replaces the local history.
func (s *Store) LoadHistory(ctx context.Context) ([]plan.HistoryItem, Result) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planstore.history")
	defer span.End()

	res := Result{Remote: RemoteDisabled, Source: SourceLocal}
	if s.remote != nil {
		records, err := s.remote.ListRecent(ctx, s.userID, MaxHistory)
		if err != nil {
			res.Remote, res.RemoteErr = RemoteFailed, err
			s.remoteFailed("list", err)
		} else {
			res.Remote = RemoteOK
			if len(records) > 0 {
				res.Source = SourceRemote
				return recordsToItems(records), res
			}
		}
	}

	return s.localHistory(ctx), res
}

// Delete removes a history item. The current plan is left untouched.
func (s *Store) Delete(ctx context.Context, id string) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "planstore.delete")
	defer tracing.EndSpan(span, &err)

	res := Result{Remote: RemoteDisabled, Source: SourceLocal}
	if s.remote != nil {
		res.Remote = RemoteOK
		// locally minted ids never exist remotely
		if remoteID, parseErr := strconv.ParseInt(id, 10, 64); parseErr == nil {
			if err := s.remote.Delete(ctx, remoteID, s.userID); err != nil {
				res.Remote, res.RemoteErr = RemoteFailed, err
				s.remoteFailed("delete", err)
			}
		}
	}

	history := s.localHistory(ctx)
	kept := make([]plan.HistoryItem, 0, len(history))
	for _, item := range history {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := s.writeHistory(ctx, kept); err != nil {
		return res, err
	}

	return res, nil
}

// Clear removes the current plan and the local history. Remote rows stay.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.local.Delete(ctx, KeyCurrentPlan, KeyPlanHistory); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}
	return nil
}

func (s *Store) localHistory(ctx context.Context) []plan.HistoryItem {
	raw, found, err := s.local.Get(ctx, KeyPlanHistory)
	if err != nil {
		log.Errorf("load plan history: %s", err)
		return []plan.HistoryItem{}
	}
	if !found {
		return []plan.HistoryItem{}
	}

	var history []plan.HistoryItem
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		log.Errorf("load plan history, stored value unreadable: %s", err)
		return []plan.HistoryItem{}
	}
	for i := range history {
		history[i].Plan.Repair()
	}
	return history
}

func (s *Store) writeHistory(ctx context.Context, history []plan.HistoryItem) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.local.Set(ctx, KeyPlanHistory, string(historyJSON)); err != nil {
		return fmt.Errorf("save plan history: %w", err)
	}
	return nil
}

func (s *Store) remoteFailed(op string, err error) {
	log.Warnf("remote plan store %s failed for [%s]: %s", op, s.userID, err)
	if s.metrics != nil {
		s.metrics.CounterRemoteStoreErrors.WithLabelValues(op).Inc()
	}
}

func recordsToItems(records []RemoteRecord) []plan.HistoryItem {
	items := make([]plan.HistoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, plan.HistoryItem{
			ID:      strconv.FormatInt(rec.ID, 10),
			Plan:    rec.Plan,
			SavedAt: rec.CreatedAt,
		})
	}
	return items
}
