// Package session runs the questionnaire flow for one visitor: ranking and
// the short analysis first, then the detailed report once a contact is left.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"questio/internal/catalog"
	"questio/internal/gateway/realtime"
	imagerepo "questio/internal/gateway/repository/image"
	sessionrepo "questio/internal/gateway/repository/session"
	"questio/internal/lead"
	"questio/internal/llm"
	"questio/internal/logger"
	"questio/internal/pipeline"
	"questio/internal/result"
	"questio/internal/scoring"
	"questio/internal/types"
)

var (
	ErrNotFound = errors.New("session not found")
	// ErrLeadCapture aborts a report request before any generation runs.
	ErrLeadCapture = errors.New("lead capture failed")
)

const defaultGenerationTimeout = 3 * time.Minute

type Options struct {
	Catalog           []types.University
	GenerationTimeout time.Duration
	Log               *logger.Logger
}

type Service struct {
	pipeline *pipeline.Orchestrator
	sessions sessionrepo.Store
	images   imagerepo.Store
	leads    lead.Recorder
	bus      realtime.Bus
	hub      *realtime.Hub
	// reports collapses concurrent report requests per session id.
	reports singleflight.Group

	catalog []types.University
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
}

func New(
	orch *pipeline.Orchestrator,
	sessions sessionrepo.Store,
	images imagerepo.Store,
	leads lead.Recorder,
	bus realtime.Bus,
	hub *realtime.Hub,
	opts Options,
) *Service {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = defaultGenerationTimeout
	}
	if opts.Log == nil {
		opts.Log = logger.NewNop()
	}
	if images == nil {
		images = imagerepo.NewInlineStore()
	}
	if bus == nil {
		bus = realtime.NewMemoryBus()
	}
	if hub == nil {
		hub = realtime.NewHub()
	}
	return &Service{
		pipeline: orch,
		sessions: sessions,
		images:   images,
		leads:    leads,
		bus:      bus,
		hub:      hub,
		catalog:  opts.Catalog,
		timeout:  opts.GenerationTimeout,
		log:      opts.Log.With("component", "session"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Rank scores the catalog without touching any session state.
func (s *Service) Rank(a types.Answers) ([]scoring.Recommendation, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return scoring.Explain(a, scoring.Rank(a, s.catalog)), nil
}

// Start ranks the catalog while the short analysis is generated, then
// composes and stores the first-stage result.
func (s *Service) Start(ctx context.Context, a types.Answers) (string, *result.Result, error) {
	if err := a.ValidateForGeneration(); err != nil {
		return "", nil, err
	}
	id := s.newID()
	a = a.Clone()

	genCtx, cancel := s.generationContext(ctx, id)
	defer cancel()

	var summary types.AnalysisSummary
	var g errgroup.Group
	g.Go(func() error {
		summary = s.pipeline.GenerateShortAnalysis(genCtx, a)
		return nil
	})
	recs := scoring.Explain(a, scoring.Rank(a, s.catalog))
	_ = g.Wait()

	res := result.Compose(recs, summary)
	s.sessions.Put(sessionrepo.State{ID: id, Answers: a, Result: res, CreatedAt: s.now()})
	s.publishStage(ctx, id, res.Stage())
	s.log.Info("session started", "session_id", id, "persona", summary.PersonaName, "recommendations", len(recs))
	return id, res, nil
}

// RequestReport records the lead, then generates the report and persona
// image concurrently and extends the stored result. A result that is
// already report-ready is returned as is. Concurrent requests for one
// session share a single lead record and a single generation.
func (s *Service) RequestReport(ctx context.Context, sessionID, contact string) (*result.Result, error) {
	st, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	if st.Result.Stage() == result.StageReportReady {
		return st.Result, nil
	}
	// Rejected per caller so one bad address does not fail a shared flight.
	if _, err := lead.NormalizeContact(contact); err != nil {
		return nil, err
	}

	v, err, shared := s.reports.Do(st.ID, func() (any, error) {
		return s.generateReport(ctx, st, contact)
	})
	if shared {
		s.log.Debug("report request joined in-flight generation", "session_id", st.ID)
	}
	if err != nil {
		return nil, err
	}
	return v.(*result.Result), nil
}

func (s *Service) generateReport(ctx context.Context, st sessionrepo.State, contact string) (*result.Result, error) {
	// A flight that started after another one finished has nothing to do.
	if st.Result.Stage() == result.StageReportReady {
		return st.Result, nil
	}
	if err := s.recordLead(ctx, contact, st.Answers); err != nil {
		return nil, err
	}

	genCtx, cancel := s.generationContext(ctx, st.ID)
	defer cancel()

	persona := st.Result.Summary().PersonaName
	var (
		sections  []types.ReportSection
		citations []types.Citation
		img       *types.PersonaImage
	)
	var g errgroup.Group
	g.Go(func() error {
		sections, citations = s.pipeline.GenerateDetailedReport(genCtx, st.Answers, persona)
		return nil
	})
	g.Go(func() error {
		img = s.pipeline.GeneratePersonaImage(genCtx, st.Answers, persona)
		return nil
	})
	_ = g.Wait()

	imageURL := ""
	if img != nil {
		url, err := s.images.Save(genCtx, st.ID, img)
		if err != nil {
			s.log.Warn("persona image not stored", "session_id", st.ID, "error", err)
		} else {
			imageURL = url
		}
	}

	err := result.Extend(st.Result, result.Extension{Sections: sections, Citations: citations, ImageURL: imageURL})
	if errors.Is(err, result.ErrAlreadyExtended) {
		return st.Result, nil
	}
	if err != nil {
		return nil, err
	}
	s.publishStage(ctx, st.ID, st.Result.Stage())
	s.log.Info("report ready", "session_id", st.ID, "sections", len(sections), "citations", len(citations), "image", imageURL != "")
	return st.Result, nil
}

func (s *Service) recordLead(ctx context.Context, contact string, a types.Answers) error {
	if s.leads == nil {
		return fmt.Errorf("%w: no recorder configured", ErrLeadCapture)
	}
	err := s.leads.Record(ctx, contact, a)
	if err == nil {
		return nil
	}
	if errors.Is(err, lead.ErrInvalidContact) {
		return err
	}
	s.log.Error("lead capture failed", "contact", contact, "error", err)
	return fmt.Errorf("%w: %v", ErrLeadCapture, err)
}

func (s *Service) Get(sessionID string) (*result.Result, error) {
	st, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	return st.Result, nil
}

// Forward connects the event bus to local websocket subscribers. It must be
// called once before Subscribe sees any events.
func (s *Service) Forward(ctx context.Context) error {
	return s.bus.StartForwarder(ctx, s.hub.Deliver)
}

// Subscribe streams events for an existing session until ctx is done.
func (s *Service) Subscribe(ctx context.Context, sessionID string) (<-chan realtime.Event, error) {
	sessionID = strings.TrimSpace(sessionID)
	if _, ok := s.sessions.Get(sessionID); !ok {
		return nil, ErrNotFound
	}
	return s.hub.Subscribe(ctx, sessionID), nil
}

// generationContext detaches in-flight calls from the caller: a client that
// disconnects does not cancel generation. Only the timeout bounds it.
func (s *Service) generationContext(ctx context.Context, sessionID string) (context.Context, context.CancelFunc) {
	genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	return llm.WithHook(genCtx, s.progressHook(sessionID)), cancel
}

func (s *Service) progressHook(sessionID string) llm.Hook {
	return llm.HookFunc(func(ctx context.Context, label string, done bool, err error) {
		s.publish(ctx, realtime.Event{
			SessionID: sessionID,
			Kind:      realtime.EventProgress,
			Label:     label,
			Done:      done,
			Failed:    err != nil,
		})
	})
}

func (s *Service) publishStage(ctx context.Context, sessionID string, stage result.Stage) {
	s.publish(ctx, realtime.Event{SessionID: sessionID, Kind: realtime.EventStage, Stage: string(stage)})
}

func (s *Service) publish(ctx context.Context, ev realtime.Event) {
	ev.At = s.now().UTC()
	if err := s.bus.Publish(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn("publish session event", "session_id", ev.SessionID, "kind", ev.Kind, "error", err)
	}
}
