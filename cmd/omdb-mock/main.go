package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

func main() {
	var (
		port   = flag.String("port", "9099", "port to listen on")
		data   = flag.String("data", "mock-omdb.json", "path to mock data file, a JSON object keyed by title")
		apiKey = flag.String("apikey", "", "require this apikey query parameter when set")
		logReq = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer func() { _ = logger.Sync() }()

	file, err := os.ReadFile(*data)
	if err != nil {
		logger.Fatalw("read mock data", "error", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(file, &payload); err != nil {
		logger.Fatalw("parse mock data", "error", err)
	}

	// OMDb matches titles case-insensitively.
	entries := make(map[string]json.RawMessage, len(payload))
	for title, entry := range payload {
		entries[strings.ToLower(strings.TrimSpace(title))] = entry
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if *logReq {
			logger.Infow("request", "title", q.Get("t"), "remote", r.RemoteAddr)
		}
		w.Header().Set("Content-Type", "application/json")

		if *apiKey != "" && q.Get("apikey") != *apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
			return
		}

		entry, ok := entries[strings.ToLower(strings.TrimSpace(q.Get("t")))]
		if !ok {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
			return
		}
		_, _ = w.Write(entry)
	})

	addr := ":" + *port
	logger.Infow("mock omdb listening", "addr", addr, "entries", len(entries))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}
