// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package weaviatetest runs an in-process stand-in for the Weaviate REST and
GraphQL endpoints the stores use.

It understands just enough GraphQL to answer Get queries built by the client:
one Equal filter on a text path, a single sort clause and a limit. Objects are
kept in memory, and a second object with the same id is rejected with 422
exactly like a real node.
*/
package weaviatetest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate/entities/models"

	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
)

var (
	classPattern = regexp.MustCompile(`\{Get \{(\w+) `)
	wherePattern = regexp.MustCompile(`where:\{operator: Equal path: \["(\w+)"\] valueText: ("(?:[^"\\]|\\.)*")\}`)
	sortPattern  = regexp.MustCompile(`sort:\[\{path:\["(\w+)"\] order:(asc|desc)\}\]`)
	limitPattern = regexp.MustCompile(`limit: (\d+)`)
)

// Server is a fake Weaviate node backed by maps.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	classes map[string]*models.Class
	objects []*models.Object
	queries []string
	failure int
}

// NewServer starts a fake node that is shut down with the test.
func NewServer(t *testing.T) *Server {
	t.Helper()

	server := &Server{classes: make(map[string]*models.Class)}

	router := chi.NewRouter()
	router.Route("/v1", func(api chi.Router) {
		api.Get("/.well-known/ready", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		api.Get("/meta", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": "1.28.0"})
		})
		api.Get("/schema/{class}", server.getClass)
		api.Post("/schema", server.createClass)
		api.Post("/objects", server.createObject)
		api.Post("/graphql", server.graphQL)
	})

	server.Server = httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

// Client returns a connected client for the fake node.
func (server *Server) Client(t *testing.T) *weaviate.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := weaviatedb.NewClient(context.Background(), server.URL, "", logger)
	require.NoError(t, err)

	return client
}

// Fail makes every object write and GraphQL query answer with status.
// Zero restores normal behaviour.
func (server *Server) Fail(status int) {
	server.mu.Lock()
	defer server.mu.Unlock()
	server.failure = status
}

// Queries returns the GraphQL queries received so far.
func (server *Server) Queries() []string {
	server.mu.Lock()
	defer server.mu.Unlock()
	return append([]string(nil), server.queries...)
}

// HasClass reports whether a class was created.
func (server *Server) HasClass(name string) bool {
	server.mu.Lock()
	defer server.mu.Unlock()
	_, ok := server.classes[name]
	return ok
}

// Objects returns the stored objects of one class in insertion order.
func (server *Server) Objects(className string) []*models.Object {
	server.mu.Lock()
	defer server.mu.Unlock()

	var objects []*models.Object
	for _, object := range server.objects {
		if object.Class == className {
			objects = append(objects, object)
		}
	}
	return objects
}

func (server *Server) getClass(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	class, ok := server.classes[chi.URLParam(r, "class")]
	server.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, class)
}

func (server *Server) createClass(w http.ResponseWriter, r *http.Request) {
	var class models.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	if _, exists := server.classes[class.Class]; exists {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("class name %q already exists", class.Class))
		return
	}
	server.classes[class.Class] = &class
	writeJSON(w, http.StatusOK, class)
}

func (server *Server) createObject(w http.ResponseWriter, r *http.Request) {
	var object models.Object
	if err := json.NewDecoder(r.Body).Decode(&object); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	if server.failure != 0 {
		writeError(w, server.failure, "node unavailable")
		return
	}

	for _, existing := range server.objects {
		if existing.ID == object.ID {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("id '%s' already exists", object.ID))
			return
		}
	}
	server.objects = append(server.objects, &object)
	writeJSON(w, http.StatusOK, object)
}

func (server *Server) graphQL(w http.ResponseWriter, r *http.Request) {
	var request models.GraphQLQuery
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.mu.Lock()
	defer server.mu.Unlock()

	server.queries = append(server.queries, request.Query)

	if server.failure != 0 {
		writeError(w, server.failure, "node unavailable")
		return
	}

	match := classPattern.FindStringSubmatch(request.Query)
	if match == nil {
		writeError(w, http.StatusBadRequest, "unsupported query")
		return
	}
	className := match[1]

	// ── 1. Filter ─────────────────────────────────────────────────────────

	rows := make([]map[string]any, 0)
	where := wherePattern.FindStringSubmatch(request.Query)
	for _, object := range server.objects {
		if object.Class != className {
			continue
		}
		properties, _ := object.Properties.(map[string]any)
		if where != nil {
			want, err := strconv.Unquote(where[2])
			if err != nil || properties[where[1]] != want {
				continue
			}
		}

		row := make(map[string]any, len(properties)+1)
		for key, value := range properties {
			row[key] = value
		}
		row["_additional"] = map[string]any{"id": object.ID.String()}
		rows = append(rows, row)
	}

	// ── 2. Sort ───────────────────────────────────────────────────────────

	if order := sortPattern.FindStringSubmatch(request.Query); order != nil {
		path, descending := order[1], order[2] == "desc"
		sort.SliceStable(rows, func(i, j int) bool {
			if descending {
				return lessValue(rows[j][path], rows[i][path])
			}
			return lessValue(rows[i][path], rows[j][path])
		})
	}

	// ── 3. Limit ──────────────────────────────────────────────────────────

	if limit := limitPattern.FindStringSubmatch(request.Query); limit != nil {
		if n, err := strconv.Atoi(limit[1]); err == nil && n < len(rows) {
			rows = rows[:n]
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"Get": map[string]any{className: rows}},
	})
}

// lessValue orders dates chronologically and anything else as text.
func lessValue(a, b any) bool {
	left, right := fmt.Sprint(a), fmt.Sprint(b)
	leftTime, leftErr := time.Parse(time.RFC3339Nano, left)
	rightTime, rightErr := time.Parse(time.RFC3339Nano, right)
	if leftErr == nil && rightErr == nil {
		return leftTime.Before(rightTime)
	}
	return strings.Compare(left, right) < 0
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": []map[string]string{{"message": message}},
	})
}
