package http

import (
	"encoding/json"
	nethttp "net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/makeadle/dle-service/internal/http/handlers"
)

type sessionPath struct {
	ID string `path:"id"`
}

type guessInput struct {
	sessionPath
	handlers.GuessRequest
}

type modeInput struct {
	sessionPath
	handlers.SwitchModeRequest
}

type topicPath struct {
	Slug string `path:"slug"`
}

type shareInput struct {
	topicPath
	Mode string `query:"mode"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "DLE API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Hosts daily guessing-game sessions backed by an authoritative scorer.")

	add := func(method, path, summary string, req any, resps ...respSpec) {
		op, err := r.NewOperationContext(method, path)
		if err != nil {
			return
		}
		op.SetSummary(summary)
		if req != nil {
			op.AddReqStructure(req)
		}
		for _, rs := range resps {
			op.AddRespStructure(rs.body, openapi.WithHTTPStatus(rs.status))
		}
		_ = r.AddOperation(op)
	}

	errResp := func(status int) respSpec { return respSpec{handlers.ErrorResponse{}, status} }

	add(nethttp.MethodGet, "/health", "Health check", nil,
		respSpec{handlers.HealthResponse{}, nethttp.StatusOK})
	add(nethttp.MethodGet, "/ready", "Readiness and hosted session count", nil,
		respSpec{handlers.HealthResponse{}, nethttp.StatusOK})
	add(nethttp.MethodGet, "/topics/{slug}", "Topic catalogue", topicPath{},
		respSpec{handlers.CatalogResponse{}, nethttp.StatusOK}, errResp(nethttp.StatusNotFound))
	add(nethttp.MethodGet, "/g/{slug}/share.png", "QR code linking to a mode page", shareInput{},
		respSpec{nil, nethttp.StatusOK}, errResp(nethttp.StatusNotFound))
	add(nethttp.MethodGet, "/sessions", "List hosted sessions", nil,
		respSpec{[]handlers.SessionResponse{}, nethttp.StatusOK})
	add(nethttp.MethodPost, "/sessions", "Open a session", handlers.OpenSessionRequest{},
		respSpec{handlers.SessionResponse{}, nethttp.StatusCreated},
		errResp(nethttp.StatusBadRequest), errResp(nethttp.StatusNotFound), errResp(nethttp.StatusBadGateway))
	add(nethttp.MethodGet, "/sessions/{id}", "Get a session", sessionPath{},
		respSpec{handlers.SessionResponse{}, nethttp.StatusOK}, errResp(nethttp.StatusNotFound))
	add(nethttp.MethodDelete, "/sessions/{id}", "Close a session", sessionPath{},
		respSpec{nil, nethttp.StatusNoContent}, errResp(nethttp.StatusNotFound))
	add(nethttp.MethodPost, "/sessions/{id}/guesses", "Submit a guess", guessInput{},
		respSpec{handlers.GuessResponse{}, nethttp.StatusOK},
		respSpec{handlers.GuessResponse{}, nethttp.StatusBadGateway},
		errResp(nethttp.StatusConflict), errResp(nethttp.StatusUnprocessableEntity))
	add(nethttp.MethodPut, "/sessions/{id}/mode", "Switch mode", modeInput{},
		respSpec{handlers.SessionResponse{}, nethttp.StatusOK}, errResp(nethttp.StatusNotFound))
	add(nethttp.MethodPost, "/sessions/{id}/reload", "Reload the current mode", sessionPath{},
		respSpec{handlers.SessionResponse{}, nethttp.StatusOK}, errResp(nethttp.StatusConflict))

	return r.Spec
}

type respSpec struct {
	body   any
	status int
}

func handleOpenAPI() nethttp.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write(data)
	}
}
