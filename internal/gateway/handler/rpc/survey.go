package rpc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"questio/internal/gateway/service/session"
	"questio/internal/lead"
	"questio/internal/logger"
	"questio/internal/types"
	"questio/internal/wizard"
)

const SurveyServiceName = "questio.v1.SurveyService"

const (
	RankProcedure          = "/" + SurveyServiceName + "/Rank"
	AnalyzeProcedure       = "/" + SurveyServiceName + "/Analyze"
	RequestReportProcedure = "/" + SurveyServiceName + "/RequestReport"
	GetResultProcedure     = "/" + SurveyServiceName + "/GetResult"
	StepProcedure          = "/" + SurveyServiceName + "/Step"
)

// leadFailureMessage is all a visitor sees when their contact could not be
// stored.
const leadFailureMessage = "전송 중 오류가 발생했습니다."

var errBadRequest = errors.New("malformed request")

type SurveyHandler struct {
	svc *session.Service
	log *logger.Logger
}

func NewSurveyHandler(svc *session.Service, log *logger.Logger) *SurveyHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &SurveyHandler{svc: svc, log: log.With("component", "rpc")}
}

// NewSurveyServiceHandler mounts every procedure under the service path,
// the same shape connect codegen produces.
func NewSurveyServiceHandler(h *SurveyHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(RankProcedure, connect.NewUnaryHandler(RankProcedure, h.Rank, opts...))
	mux.Handle(AnalyzeProcedure, connect.NewUnaryHandler(AnalyzeProcedure, h.Analyze, opts...))
	mux.Handle(RequestReportProcedure, connect.NewUnaryHandler(RequestReportProcedure, h.RequestReport, opts...))
	mux.Handle(GetResultProcedure, connect.NewUnaryHandler(GetResultProcedure, h.GetResult, opts...))
	mux.Handle(StepProcedure, connect.NewUnaryHandler(StepProcedure, h.Step, opts...))
	return "/" + SurveyServiceName + "/", mux
}

func (h *SurveyHandler) Rank(_ context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	a, err := answersFrom(req.Msg)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	recs, err := h.svc.Rank(a)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	out, err := toRankResponse(recs)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	return connect.NewResponse(out), nil
}

func (h *SurveyHandler) Analyze(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	a, err := answersFrom(req.Msg)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	id, res, err := h.svc.Start(ctx, a)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	out, err := toResultResponse(id, res)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	return connect.NewResponse(out), nil
}

func (h *SurveyHandler) RequestReport(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	var in sessionRequest
	if err := decode(req.Msg, &in); err != nil {
		return nil, h.toConnectError(err)
	}
	id := strings.TrimSpace(in.SessionID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("sessionId is required"))
	}
	res, err := h.svc.RequestReport(ctx, id, in.Contact)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	out, err := toResultResponse(id, res)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	return connect.NewResponse(out), nil
}

func (h *SurveyHandler) GetResult(_ context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	var in sessionRequest
	if err := decode(req.Msg, &in); err != nil {
		return nil, h.toConnectError(err)
	}
	id := strings.TrimSpace(in.SessionID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("sessionId is required"))
	}
	res, err := h.svc.Get(id)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	out, err := toResultResponse(id, res)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	return connect.NewResponse(out), nil
}

// Step advances the questionnaire by one input. The client keeps the stage
// and draft between calls; an empty request returns the fresh form.
func (h *SurveyHandler) Step(_ context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	var in stepRequest
	if err := decode(req.Msg, &in); err != nil {
		return nil, h.toConnectError(err)
	}
	stage, err := wizard.ParseStage(in.Stage)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	draft := wizard.Defaults()
	if in.Draft != nil {
		draft = *in.Draft
	}
	w := wizard.Resume(stage, draft)
	if in.Input != nil {
		if _, err := w.Apply(in.Input.toWizard()); err != nil {
			return nil, h.toConnectError(err)
		}
	}
	out, err := toStepResponse(w)
	if err != nil {
		return nil, h.toConnectError(err)
	}
	return connect.NewResponse(out), nil
}

func answersFrom(msg *structpb.Struct) (types.Answers, error) {
	var in answersRequest
	if err := decode(msg, &in); err != nil {
		return types.Answers{}, err
	}
	if in.Answers == nil {
		return types.Answers{}, errors.Join(errBadRequest, errors.New("answers is required"))
	}
	return *in.Answers, nil
}

func (h *SurveyHandler) toConnectError(err error) error {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, types.ErrInvalidAnswers),
		errors.Is(err, types.ErrMissingTarget),
		errors.Is(err, lead.ErrInvalidContact),
		errors.Is(err, wizard.ErrInvalidInput),
		errors.Is(err, wizard.ErrInvalidTransition):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, session.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, session.ErrLeadCapture):
		return connect.NewError(connect.CodeUnavailable, errors.New(leadFailureMessage))
	default:
		h.log.Error("rpc failed", "error", err)
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}
}
