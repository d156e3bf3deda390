package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questio/internal/gateway/realtime"
	sessionrepo "questio/internal/gateway/repository/session"
	"questio/internal/lead"
	"questio/internal/llm"
	"questio/internal/pipeline"
	"questio/internal/result"
	"questio/internal/types"
)

type failingStore struct{ lead.MemoryStore }

func (*failingStore) Append(context.Context, lead.Record) error { return errors.New("disk full") }

type fixture struct {
	svc   *Service
	fake  *llm.FakeClient
	leads *lead.MemoryStore
}

func newFixture(t *testing.T, fake *llm.FakeClient, store lead.Store) fixture {
	t.Helper()
	mem := lead.NewMemoryStore()
	if store == nil {
		store = mem
	}
	client := llm.Wrap(fake, llm.WithHooks())
	svc := New(
		pipeline.New(client, nil, nil),
		sessionrepo.NewLRUStore(sessionrepo.Config{}),
		nil,
		lead.NewService(store),
		nil,
		nil,
		Options{GenerationTimeout: 5 * time.Second},
	)
	require.NoError(t, svc.Forward(context.Background()))
	return fixture{svc: svc, fake: fake, leads: mem}
}

func validAnswers() types.Answers {
	return types.Answers{
		Tier:               types.TierMid,
		TargetUniversities: []string{"건국대", "", ""},
		CSATSubject:        types.SubjectCalculus,
		StudyScope:         []string{types.ScopeMath1, types.ScopeMath2},
		SolvingStyle:       types.StyleComputation,
		WritingConcern:     types.ConcernTime,
	}
}

func TestRankIsStateless(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)

	recs, err := f.svc.Rank(validAnswers())
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	assert.Equal(t, "가천대", recs[0].University.Name)
	assert.Empty(t, f.fake.Calls())

	_, err = f.svc.Rank(types.Answers{})
	assert.ErrorIs(t, err, types.ErrInvalidAnswers)
}

func TestStartComposesSummaryResult(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)

	id, res, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap := res.Snapshot()
	assert.Equal(t, result.StageSummaryReady, snap.Stage)
	assert.Equal(t, "연산 특화 실전형 전략가", snap.PersonaName)
	assert.Equal(t, "가천대", snap.Recommendations[0].University.Name)
	assert.Empty(t, snap.Sections)
	assert.Equal(t, []string{pipeline.LabelAnalysis}, f.fake.Calls())

	got, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.Same(t, res, got)
}

func TestStartRequiresFirstTarget(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)
	a := validAnswers()
	a.TargetUniversities = []string{"", "건국대"}

	_, _, err := f.svc.Start(context.Background(), a)
	assert.ErrorIs(t, err, types.ErrMissingTarget)
	assert.Empty(t, f.fake.Calls())
}

func TestStartFallsBackWhenAnalysisFails(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSONErr = errors.New("quota")
	f := newFixture(t, fake, nil)

	_, res, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)
	assert.Equal(t, pipeline.FallbackSummary(validAnswers()), res.Summary())
}

func TestRequestReportExtendsResult(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	res, err := f.svc.RequestReport(context.Background(), id, "Kim <Kim@Example.com>")
	require.NoError(t, err)

	snap := res.Snapshot()
	assert.Equal(t, result.StageReportReady, snap.Stage)
	assert.Len(t, snap.Sections, types.ReportSectionCount)
	assert.True(t, strings.HasPrefix(snap.ImageURL, "data:image/png;base64,"))

	recs, err := f.leads.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "kim@example.com", recs[0].Contact)
	assert.Equal(t, "건국대", recs[0].Answers.FirstTarget())

	calls := f.fake.Calls()
	assert.ElementsMatch(t, []string{pipeline.LabelAnalysis, pipeline.LabelReport, pipeline.LabelImage}, calls)
}

func TestRequestReportIsIdempotent(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	first, err := f.svc.RequestReport(context.Background(), id, "a@b.co")
	require.NoError(t, err)
	callsAfterFirst := len(f.fake.Calls())

	second, err := f.svc.RequestReport(context.Background(), id, "a@b.co")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, f.fake.Calls(), callsAfterFirst)

	recs, _ := f.leads.List(context.Background())
	assert.Len(t, recs, 1)
}

func TestRequestReportConcurrentCallersShareOneReport(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Delay = 10 * time.Millisecond
	f := newFixture(t, fake, nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*result.Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := f.svc.RequestReport(context.Background(), id, "a@b.co")
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, result.StageReportReady, r.Stage())
		assert.Same(t, results[0], r)
	}

	count := map[string]int{}
	for _, c := range f.fake.Calls() {
		count[c]++
	}
	assert.Equal(t, 1, count[pipeline.LabelReport])
	assert.Equal(t, 1, count[pipeline.LabelImage])

	leads, err := f.leads.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestRequestReportInvalidContactDoesNotJoinFlight(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Delay = 20 * time.Millisecond
	f := newFixture(t, fake, nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.RequestReport(context.Background(), id, "a@b.co")
		done <- err
	}()

	_, err = f.svc.RequestReport(context.Background(), id, "nope")
	assert.ErrorIs(t, err, lead.ErrInvalidContact)
	require.NoError(t, <-done)
}

func TestRequestReportLeadFailureSkipsGeneration(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), &failingStore{})
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	_, err = f.svc.RequestReport(context.Background(), id, "a@b.co")
	assert.ErrorIs(t, err, ErrLeadCapture)
	assert.Equal(t, []string{pipeline.LabelAnalysis}, f.fake.Calls())

	res, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, result.StageSummaryReady, res.Stage())
}

func TestRequestReportInvalidContact(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	_, err = f.svc.RequestReport(context.Background(), id, "not-an-address")
	assert.ErrorIs(t, err, lead.ErrInvalidContact)
	assert.NotErrorIs(t, err, ErrLeadCapture)
}

func TestRequestReportWithoutImage(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.NoImage = true
	f := newFixture(t, fake, nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	res, err := f.svc.RequestReport(context.Background(), id, "a@b.co")
	require.NoError(t, err)
	snap := res.Snapshot()
	assert.Empty(t, snap.ImageURL)
	assert.Len(t, snap.Sections, types.ReportSectionCount)
}

func TestRequestReportSurvivesCallerCancellation(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Delay = 30 * time.Millisecond
	f := newFixture(t, fake, nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(5*time.Millisecond, cancel)

	res, err := f.svc.RequestReport(ctx, id, "a@b.co")
	require.NoError(t, err)
	// The fake report only comes back when generation was not cancelled.
	assert.NotEqual(t, pipeline.FallbackReport()[0].Title, res.Snapshot().Sections[0].Title)
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)

	_, err := f.svc.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.RequestReport(context.Background(), "nope", "a@b.co")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Subscribe(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscribeReceivesProgressAndStage(t *testing.T) {
	f := newFixture(t, llm.NewFakeClient(), nil)
	id, _, err := f.svc.Start(context.Background(), validAnswers())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := f.svc.Subscribe(ctx, id)
	require.NoError(t, err)

	_, err = f.svc.RequestReport(context.Background(), id, "a@b.co")
	require.NoError(t, err)

	var got []realtime.Event
	require.Eventually(t, func() bool {
		for {
			select {
			case ev := <-events:
				got = append(got, ev)
			default:
				return len(got) > 0 && got[len(got)-1].Kind == realtime.EventStage
			}
		}
	}, time.Second, 5*time.Millisecond)

	// report and image: one start and one finish each, then the stage.
	require.Len(t, got, 5)
	last := got[len(got)-1]
	assert.Equal(t, string(result.StageReportReady), last.Stage)
	for _, ev := range got[:4] {
		assert.Equal(t, realtime.EventProgress, ev.Kind)
		assert.Contains(t, []string{pipeline.LabelReport, pipeline.LabelImage}, ev.Label)
		assert.False(t, ev.Failed)
	}
}
