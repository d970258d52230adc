// Package web serves analysis results over HTTP: a JSON API, SSE
// streams for live updates in watch mode, and a small static page.
package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/ritzau/graphrank/pkg/analysis"
	"github.com/ritzau/graphrank/pkg/logging"
	"github.com/ritzau/graphrank/pkg/model"
	"github.com/ritzau/graphrank/pkg/pubsub"
)

//go:embed static/*
var staticFiles embed.FS

// GraphData is the node/edge view of the analyzed graph for
// visualization clients. Parallel edges appear once per occurrence.
type GraphData struct {
	Nodes []int64      `json:"nodes"`
	Edges []model.Edge `json:"edges"`
}

// Server holds the latest analysis result and serves it.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu     sync.RWMutex
	report *analysis.Report
	graph  *GraphData
}

// NewServer creates a web server with SSE topics configured.
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// New subscribers get the current state, not history.
	ssePublisher.ConfigureTopic("analysis_status", pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})
	ssePublisher.ConfigureTopic("report", pubsub.TopicConfig{
		BufferSize: 1,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// PublishStatus implements analysis.Publisher.
func (s *Server) PublishStatus(state, message string) error {
	return s.publisher.Publish("analysis_status", state, pubsub.AnalysisStatus{
		State:   state,
		Message: message,
	})
}

// PublishResult implements analysis.Publisher: it stores the latest
// report and graph view and pushes the report to SSE subscribers.
func (s *Server) PublishResult(g *model.Graph, report analysis.Report) error {
	data := buildGraphData(g)

	s.mu.Lock()
	s.report = &report
	s.graph = data
	s.mu.Unlock()

	return s.publisher.Publish("report", "updated", report)
}

// Start runs the HTTP server on the given port. Blocks.
func (s *Server) Start(port int) error {
	addr := ":" + strconv.Itoa(port)
	return http.ListenAndServe(addr, logging.RequestIDMiddleware(s.router))
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/status", s.handleSubscribe("analysis_status")).Methods("GET")
	s.router.HandleFunc("/api/subscribe/report", s.handleSubscribe("report")).Methods("GET")

	s.router.HandleFunc("/api/report", s.handleReport).Methods("GET")
	s.router.HandleFunc("/api/graph", s.handleGraph).Methods("GET")

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logging.Fatal("embedded static files missing", "error", err)
	}
	s.router.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "Report not available yet", http.StatusServiceUnavailable)
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	s.mu.RLock()
	graph := s.graph
	s.mu.RUnlock()

	if graph == nil {
		_ = json.NewEncoder(w).Encode(&GraphData{Nodes: []int64{}, Edges: []model.Edge{}})
		return
	}
	_ = json.NewEncoder(w).Encode(graph)
}

// handleSubscribe streams a topic over SSE until the client goes away.
func (s *Server) handleSubscribe(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// Initial comment establishes the stream (Safari compatibility).
		_, _ = w.Write([]byte(": connected\n\n"))
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		sub, err := s.publisher.Subscribe(r.Context(), topic)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer sub.Close()

		for event := range sub.Events() {
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.DebugContext(r.Context(), "SSE client disconnected", "topic", topic, "error", err)
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func buildGraphData(g *model.Graph) *GraphData {
	data := &GraphData{
		Nodes: g.Nodes(),
		Edges: make([]model.Edge, 0, g.EdgeCount()),
	}
	for _, source := range data.Nodes {
		for _, target := range g.OutNeighbors(source) {
			data.Edges = append(data.Edges, model.Edge{Source: source, Target: target})
		}
	}
	return data
}
