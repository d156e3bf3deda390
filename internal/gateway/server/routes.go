package server

import (
	"net/http"

	"questio/internal/gateway/handler"
	"questio/internal/gateway/handler/rpc"
	"questio/internal/gateway/middleware"
)

func NewMux(
	surveyHandler *rpc.SurveyHandler,
	watchHandler *handler.WatchHandler,
	corsOrigins []string,
) http.Handler {
	mux := http.NewServeMux()

	// RPC Handlers
	mux.Handle(rpc.NewSurveyServiceHandler(surveyHandler))

	// Streams
	mux.Handle("/ws/sessions", watchHandler)

	mux.HandleFunc("/healthz", handler.Health)

	return middleware.CORS(corsOrigins)(mux)
}
