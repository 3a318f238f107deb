package web

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/custodia-labs/glazed/internal/logger"
)

// maxQueryBytes bounds the size of a GraphQL request body.
const maxQueryBytes = 1 << 20

// graphQLRequest is the JSON body of a GraphQL POST.
type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writePage(w, http.StatusMethodNotAllowed, getWarningHTML())
		return
	}

	var req graphQLRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": []map[string]string{{"message": "invalid request body: " + err.Error()}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	if result.HasErrors() {
		logger.Debug("graphql: %d errors (request_id=%s)", len(result.Errors), requestIDFrom(r.Context()))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGraphiQL(w http.ResponseWriter, _ *http.Request) {
	writePage(w, http.StatusOK, graphiqlHTML(s.graphqlEndpoint))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writePage(w, http.StatusNotFound, notFoundHTML())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response: %v", err)
	}
}

func writePage(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}
