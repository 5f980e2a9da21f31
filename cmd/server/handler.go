package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"bookban-guard/internal/core/service"
	"bookban-guard/internal/dump"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// checkResponse is the body returned by POST /check.
type checkResponse struct {
	Removed     int            `json:"removed"`
	TotalBefore int            `json:"total_before"`
	Messages    []string       `json:"messages"`
	Document    *dump.Document `json:"document"`
}

// messageRecorder collects notifications for one request.
type messageRecorder []string

func (r *messageRecorder) Notify(_ uuid.UUID, message string) {
	*r = append(*r, message)
}

type server struct {
	budget       int
	maxBodyBytes int64
	logger       hclog.Logger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", s.handleCheck)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := dump.JSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = dump.YAML
	}
	doc, err := dump.Parse(body, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tree, err := dump.Build(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec := messageRecorder{}
	checker := service.New(&rec,
		service.WithBudget(s.budget),
		service.WithLogger(s.logger.Named("checker")),
	)
	report, err := checker.Check(tree.Subject, tree.Root)
	if err != nil {
		s.logger.Error("check failed", "subject", tree.Subject, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	after, err := dump.Capture(tree)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(checkResponse{
		Removed:     report.Removed,
		TotalBefore: report.BytesBefore,
		Messages:    rec,
		Document:    after,
	})
}
