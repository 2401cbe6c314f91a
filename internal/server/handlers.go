package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmmcguire/ashurbanipal-web-go/pkg/recommend"
)

type handlers struct {
	engine *Engine
}

type rowsResponse struct {
	Count int         `json:"count"`
	Rows  []rowResult `json:"rows"`
}

type rowResult struct {
	EtextNo         uint64  `json:"etext_no"`
	Link            string  `json:"link"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Subject         string  `json:"subject"`
	Language        string  `json:"language"`
	ReleaseDate     string  `json:"release_date"`
	LOCClass        string  `json:"loc_class"`
	Notes           string  `json:"notes"`
	CopyrightStatus string  `json:"copyright_status"`
	Score           float64 `json:"score"`
}

// recommend handles /style, /topic, and /combination: required etext_no,
// optional start/limit windowing, metadata join, 200 or 404.
func (h *handlers) recommend(rec recommend.Recommender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		etextNo, derr := requireEtextNo(r)
		if derr != nil {
			writeError(w, derr)
			return
		}
		start, limit := h.pagination(r)

		rows, ok := recommend.SortedResults(rec, etextNo)
		if !ok {
			writeError(w, notFound("no matching etext"))
			return
		}
		h.respondRows(w, rows, start, limit)
	}
}

// lookupOne handles GET /lookup/{etextNo}: a single record, 200 or 404.
func (h *handlers) lookupOne(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "etextNo")
	etextNo, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, badRequest("etext_no must be a non-negative integer"))
		return
	}
	rec, ok := h.engine.Metadata.Get(etextNo)
	if !ok {
		writeError(w, notFound("unknown etext"))
		return
	}
	writeJSON(w, toRowResult(rec.EtextNo, rec.Link, rec.Title, rec.Author, rec.Subject,
		rec.Language, rec.ReleaseDate, rec.LOCClass, rec.Notes, rec.CopyrightStatus, 0))
}

// search handles GET /lookup?query=...: phonetic index lookup, same
// windowing and join path as the recommendation endpoints.
func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, badRequest("missing required parameter: query"))
		return
	}
	start, limit := h.pagination(r)
	rows := h.engine.Index.GetEntries(query)
	h.respondRows(w, rows, start, limit)
}

// respondRows joins and windows rows for the response body. Count reports
// the full, unwindowed result-set size (matching the original web.rs
// behavior of counting before .skip(start).take(limit)), not the page
// length, so clients can page against the true total.
func (h *handlers) respondRows(w http.ResponseWriter, rows []recommend.Posting, start, limit int) {
	scored := h.engine.Metadata.Join(rows, start, limit)
	out := make([]rowResult, 0, len(scored))
	for _, s := range scored {
		out = append(out, toRowResult(s.EtextNo, s.Link, s.Title, s.Author, s.Subject,
			s.Language, s.ReleaseDate, s.LOCClass, s.Notes, s.CopyrightStatus, s.Score))
	}
	writeJSON(w, rowsResponse{Count: len(rows), Rows: out})
}

func toRowResult(etextNo uint64, link, title, author, subject, language, releaseDate, locClass, notes, copyrightStatus string, score float64) rowResult {
	return rowResult{
		EtextNo:         etextNo,
		Link:            link,
		Title:           title,
		Author:          author,
		Subject:         subject,
		Language:        language,
		ReleaseDate:     releaseDate,
		LOCClass:        locClass,
		Notes:           notes,
		CopyrightStatus: copyrightStatus,
		Score:           score,
	}
}

func requireEtextNo(r *http.Request) (uint64, *dispatchError) {
	raw := r.URL.Query().Get("etext_no")
	if raw == "" {
		return 0, badRequest("missing required parameter: etext_no")
	}
	etextNo, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, badRequest("etext_no must be a non-negative integer")
	}
	return etextNo, nil
}

func (h *handlers) pagination(r *http.Request) (start, limit int) {
	start = 0
	limit = h.engine.Pagination.DefaultLimit

	if raw := r.URL.Query().Get("start"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			start = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			limit = v
		}
	}
	if limit > h.engine.Pagination.MaximumLimit {
		limit = h.engine.Pagination.MaximumLimit
	}
	return start, limit
}
