// Demo content server. Serves a small in-memory article set over the
// same wire contract as the hosted backend, deliberately answering each
// endpoint family with a different envelope shape so the client's
// normalizer gets exercised end to end.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

type article struct {
	ID          int    `json:"_id"`
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url,omitempty"`
	PubDate     string `json:"pub_date,omitempty"`
	SourceName  string `json:"source_name,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Count       int    `json:"count"`
	Allow       bool   `json:"allow"`
}

type source struct {
	ID         int    `json:"_id"`
	SourceName string `json:"source_name"`
	RSSURL     string `json:"rss_url"`
	Category   string `json:"category"`
}

type store struct {
	mu       sync.Mutex
	articles []article
	sources  []source
	nextID   int
}

func seed() *store {
	now := time.Now().UTC()
	day := func(n int) string { return now.AddDate(0, 0, -n).Format(time.RFC3339) }
	s := &store{nextID: 100}
	s.articles = []article{
		{ID: 1, Title: "Quantum chip clears error-correction milestone", Summary: "A 1,000-qubit prototype sustained a logical qubit for over an hour.", Content: "<p>Researchers demonstrated <b>sustained error correction</b> on a superconducting lattice.</p><p>The result moves fault-tolerant machines closer to practical workloads.</p>", URL: "https://example.com/quantum-milestone", PubDate: day(0), SourceName: "TechPulse", Category: "Tech", Subcategory: "Quantum Computing", ImageURL: "https://example.com/img/quantum.jpg", Allow: true},
		{ID: 2, Title: "Edge inference comes to commodity routers", Summary: "Tiny language models now run on off-the-shelf home gateways.", Content: "<p>Vendors are shipping firmware that schedules small models beside the packet path.</p>", URL: "https://example.com/edge-routers", PubDate: day(1), SourceName: "TechPulse", Category: "Tech", Subcategory: "Edge Computing", Allow: true},
		{ID: 3, Title: "Open hardware group standardizes RISC-V laptop board", Summary: "A shared reference design aims to cut bring-up time for vendors.", URL: "https://example.com/riscv-laptop", PubDate: day(1), SourceName: "Silicon Wire", Category: "Tech", Subcategory: "Semiconductors", Allow: true},
		{ID: 4, Title: "Grid-scale sodium batteries enter commercial pilots", Summary: "Utilities begin field trials of sodium-ion storage at substation scale.", URL: "https://example.com/sodium-grid", PubDate: day(2), SourceName: "Green Ledger", Category: "Tech", Subcategory: "Green Tech", Allow: true},
		{ID: 5, Title: "Satellite internet constellation opens developer API", Summary: "Latency-aware routing hints are now exposed to application builders.", URL: "https://example.com/sat-api", PubDate: day(3), SourceName: "TechPulse", Category: "Tech", Subcategory: "Space Tech", Allow: false},
		{ID: 6, Title: "Hospitals trial ambient clinical transcription", Summary: "Pilot wards report shorter documentation time per patient.", URL: "https://example.com/ambient-clinical", PubDate: day(4), SourceName: "HealthBeat", Category: "Tech", Subcategory: "HealthTech", Allow: true},
	}
	s.sources = []source{
		{ID: 1, SourceName: "TechPulse", RSSURL: "https://example.com/techpulse/rss", Category: "Tech"},
		{ID: 2, SourceName: "Silicon Wire", RSSURL: "https://example.com/siliconwire/feed.xml", Category: "Tech"},
	}
	return s
}

func main() {
	port := flag.Int("port", 8080, "Port to run the demo server on")
	host := flag.String("host", "localhost", "Host to bind the demo server to")
	flag.Parse()

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", *host, *port),
		Handler: createHandler(seed()),
	}

	go func() {
		log.Printf("Demo content server on http://%s:%d", *host, *port)
		log.Printf("Point the client at it with NEWSLY_API_BASE=http://%s:%d", *host, *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down demo server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Demo server stopped")
}

func createHandler(s *store) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news/category/", s.categoryHandler)
	mux.HandleFunc("/api/news/subcategory/", s.subcategoryHandler)
	mux.HandleFunc("/api/news/getTrendingNews", s.specialHandler)
	mux.HandleFunc("/api/news/getTodayNews", s.specialHandler)
	mux.HandleFunc("/api/news/getLatestNews", s.specialHandler)
	mux.HandleFunc("/api/news/", s.articleHandler)
	mux.HandleFunc("/api/news", s.adminListHandler)
	mux.HandleFunc("/api/sources/", s.sourceHandler)
	mux.HandleFunc("/api/sources", s.sourcesHandler)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func limitFrom(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func (s *store) allowed() []article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []article{}
	for _, a := range s.articles {
		if a.Allow {
			out = append(out, a)
		}
	}
	return out
}

// categoryHandler answers with a bare JSON array, the oldest envelope
// shape the hosted service ever used.
func (s *store) categoryHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/news/category/")
	sub := r.URL.Query().Get("subcategory")
	items := []article{}
	for _, a := range s.allowed() {
		if !hasCategory(a, name) {
			continue
		}
		if sub != "" && !strings.EqualFold(a.Subcategory, sub) {
			continue
		}
		items = append(items, a)
	}
	if n := limitFrom(r); n > 0 && len(items) > n {
		items = items[:n]
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *store) subcategoryHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/news/subcategory/")
	items := []article{}
	for _, a := range s.allowed() {
		if strings.EqualFold(a.Subcategory, name) {
			items = append(items, a)
		}
	}
	if n := limitFrom(r); n > 0 && len(items) > n {
		items = items[:n]
	}
	writeJSON(w, http.StatusOK, items)
}

// specialHandler answers the trending/today/latest lists with the
// {"news": [...]} wrapper.
func (s *store) specialHandler(w http.ResponseWriter, r *http.Request) {
	items := s.allowed()
	if n := limitFrom(r); n > 0 && len(items) > n {
		items = items[:n]
	}
	writeJSON(w, http.StatusOK, map[string]any{"news": items})
}

func hasCategory(a article, name string) bool {
	for _, c := range strings.Split(a.Category, ",") {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return true
		}
	}
	return false
}

// articleHandler serves GET/PUT/DELETE /api/news/:id plus the allow and
// view sub-resources.
func (s *store) articleHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/news/")
	parts := strings.Split(rest, "/")
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 {
		switch {
		case parts[1] == "allow" && r.Method == http.MethodPut:
			s.allowHandler(w, r, id)
			return
		case parts[1] == "view" && r.Method == http.MethodPost:
			s.viewHandler(w, r, id)
			return
		}
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.articles {
		if s.articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.articles[idx])
	case http.MethodPut:
		var in article
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad payload"})
			return
		}
		in.ID = id
		in.Count = s.articles[idx].Count
		in.Allow = s.articles[idx].Allow
		s.articles[idx] = in
		writeJSON(w, http.StatusOK, s.articles[idx])
	case http.MethodDelete:
		s.articles = append(s.articles[:idx], s.articles[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *store) allowHandler(w http.ResponseWriter, r *http.Request, id int) {
	var body struct {
		Allow *bool `json:"allow"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Allow == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "allow is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].Allow = *body.Allow
			writeJSON(w, http.StatusOK, s.articles[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (s *store) viewHandler(w http.ResponseWriter, _ *http.Request, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles[i].Count++
			writeJSON(w, http.StatusOK, map[string]int{"count": s.articles[i].Count})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

// adminListHandler answers the paginated moderation listing with the
// {"data": ..., "total": ..., "totalPages": ...} envelope and accepts
// POST for article creation.
func (s *store) adminListHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.articleCreate(w, r)
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 20
	}

	s.mu.Lock()
	all := make([]article, 0, len(s.articles))
	for _, a := range s.articles {
		if c := q.Get("category"); c != "" && !hasCategory(a, c) {
			continue
		}
		if src := q.Get("source"); src != "" && !strings.EqualFold(a.SourceName, src) {
			continue
		}
		if al := q.Get("allow"); al != "" {
			want, err := strconv.ParseBool(al)
			if err != nil || a.Allow != want {
				continue
			}
		}
		all = append(all, a)
	}
	s.mu.Unlock()

	total := len(all)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       all[start:end],
		"total":      total,
		"totalPages": totalPages,
	})
}

func (s *store) articleCreate(w http.ResponseWriter, r *http.Request) {
	var in article
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a title is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID
	s.nextID++
	s.articles = append(s.articles, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *store) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.sources)
	case http.MethodPost:
		var in source
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.SourceName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a source name is required"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		in.ID = s.nextID
		s.nextID++
		s.sources = append(s.sources, in)
		writeJSON(w, http.StatusCreated, in)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *store) sourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/sources/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.sources {
		if s.sources[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.sources[idx])
	case http.MethodPut:
		var in source
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad payload"})
			return
		}
		in.ID = id
		s.sources[idx] = in
		writeJSON(w, http.StatusOK, in)
	case http.MethodDelete:
		s.sources = append(s.sources[:idx], s.sources[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
