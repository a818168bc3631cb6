// ABOUTME: Route handlers for mistakes, translations, suggestions, participants, canonicalization
// ABOUTME: Wire shapes mirror what the web client expects; reporter names come from the request

package api

import (
	"net/http"
	"time"

	"github.com/shoresh-dev/shoresh/internal/store"
)

// Wire types. Snake_case field names are what the web client was built
// against; the store types stay free of encoding concerns.

type countedMistake struct {
	Mistake string `json:"mistake"`
	Count   int    `json:"count"`
}

type personMistakes struct {
	Name            string           `json:"name"`
	CountedMistakes []countedMistake `json:"counted_mistakes"`
}

type mistakeReport struct {
	Name    string `json:"name"`
	Mistake string `json:"mistake"`
}

type mistakeRecord struct {
	Name    string `json:"name"`
	Mistake string `json:"mistake"`
	Count   int    `json:"count"`
}

type translation struct {
	English   string `json:"english"`
	Hebrew    string `json:"hebrew"`
	Suggestor string `json:"suggestor,omitempty"`
}

type mistakeSuggestion struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Mistake  string `json:"mistake"`
	Context  string `json:"context"`
	Reporter string `json:"reporter"`
}

type newMistakeSuggestion struct {
	Name    string `json:"name"`
	Mistake string `json:"mistake"`
	Context string `json:"context"`
}

type discardMistakeSuggestion struct {
	ID       int64 `json:"id"`
	Accepted bool  `json:"accepted"`
}

type archivedMistakeSuggestion struct {
	Name       string    `json:"name"`
	Mistake    string    `json:"mistake"`
	Context    string    `json:"context"`
	Reporter   string    `json:"reporter"`
	Accepted   bool      `json:"accepted"`
	ResolvedAt time.Time `json:"resolved_at"`
}

type translationSuggestion struct {
	ID        int64  `json:"id"`
	English   string `json:"english"`
	Hebrew    string `json:"hebrew"`
	Suggestor string `json:"suggestor"`
}

type newTranslationSuggestion struct {
	English string `json:"english"`
	Hebrew  string `json:"hebrew"`
}

type canonicalMapping struct {
	Word      string `json:"word"`
	Canonical string `json:"canonical"`
}

// --- Participants ---

func (s *Server) handleParticipants(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.Participants(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var name string
	if err := decodeJSON(r, &name); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.store.AddParticipant(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, nil)
}

// --- Mistakes ---

func (s *Server) handleAllMistakes(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.AllMistakes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]personMistakes, 0, len(all))
	for _, pm := range all {
		out = append(out, toPersonMistakes(pm))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMistakesFor(w http.ResponseWriter, r *http.Request) {
	pm, err := s.store.MistakesFor(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPersonMistakes(*pm))
}

func (s *Server) handleMistakenWords(w http.ResponseWriter, r *http.Request) {
	words, err := s.store.MistakenWords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, words)
}

func (s *Server) handleReportMistake(w http.ResponseWriter, r *http.Request) {
	var report mistakeReport
	if err := decodeJSON(r, &report); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	record, err := s.store.ReportMistake(r.Context(), report.Name, report.Mistake)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, mistakeRecord{
		Name:    record.Name,
		Mistake: record.Mistake,
		Count:   record.Count,
	})
}

func toPersonMistakes(pm store.PersonMistakes) personMistakes {
	out := personMistakes{Name: pm.Name, CountedMistakes: []countedMistake{}}
	for _, cm := range pm.Mistakes {
		out.CountedMistakes = append(out.CountedMistakes, countedMistake(cm))
	}
	return out
}

// --- Translations ---

func (s *Server) handleAllTranslations(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.AllTranslations(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]translation, 0, len(all))
	for _, t := range all {
		out = append(out, translation(t))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddTranslation(w http.ResponseWriter, r *http.Request) {
	var t translation
	if err := decodeJSON(r, &t); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.store.AddTranslation(r.Context(), t.English, t.Hebrew, t.Suggestor); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	renderings, err := s.store.Translate(r.Context(), r.PathValue("english"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, renderings)
}

// --- Suggestions ---

func (s *Server) handleMistakeSuggestions(w http.ResponseWriter, r *http.Request) {
	pending, err := s.store.MistakeSuggestions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]mistakeSuggestion, 0, len(pending))
	for _, ms := range pending {
		out = append(out, mistakeSuggestion(ms))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSuggestMistake(w http.ResponseWriter, r *http.Request) {
	var suggestion newMistakeSuggestion
	if err := decodeJSON(r, &suggestion); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id, err := s.store.SuggestMistake(r.Context(),
		suggestion.Name, suggestion.Mistake, suggestion.Context, s.reporterName(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, id)
}

func (s *Server) handleDiscardMistakeSuggestion(w http.ResponseWriter, r *http.Request) {
	var discard discardMistakeSuggestion
	if err := decodeJSON(r, &discard); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.store.DiscardMistakeSuggestion(r.Context(), discard.ID, discard.Accepted); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleArchivedMistakeSuggestions(w http.ResponseWriter, r *http.Request) {
	archived, err := s.store.ArchivedMistakeSuggestions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]archivedMistakeSuggestion, 0, len(archived))
	for _, a := range archived {
		out = append(out, archivedMistakeSuggestion{
			Name:       a.Name,
			Mistake:    a.Mistake,
			Context:    a.Context,
			Reporter:   a.Reporter,
			Accepted:   a.Accepted,
			ResolvedAt: a.ResolvedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTranslationSuggestions(w http.ResponseWriter, r *http.Request) {
	pending, err := s.store.TranslationSuggestions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]translationSuggestion, 0, len(pending))
	for _, ts := range pending {
		out = append(out, translationSuggestion(ts))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSuggestTranslation(w http.ResponseWriter, r *http.Request) {
	var suggestion newTranslationSuggestion
	if err := decodeJSON(r, &suggestion); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	id, err := s.store.SuggestTranslation(r.Context(),
		suggestion.English, suggestion.Hebrew, s.reporterName(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, id)
}

func (s *Server) handleDiscardTranslationSuggestion(w http.ResponseWriter, r *http.Request) {
	var id int64
	if err := decodeJSON(r, &id); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.store.DiscardTranslationSuggestion(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

// --- Canonicalization ---

func (s *Server) handleIsKnownWord(w http.ResponseWriter, r *http.Request) {
	known, err := s.store.IsKnownWord(r.Context(), r.PathValue("word"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, known)
}

func (s *Server) handleCanonicalize(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	canonical, known, err := s.store.Canonicalize(r.Context(), word)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !known {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no canonical form for " + word})
		return
	}
	s.writeJSON(w, http.StatusOK, canonical)
}

func (s *Server) handleDefineCanonical(w http.ResponseWriter, r *http.Request) {
	var mapping canonicalMapping
	if err := decodeJSON(r, &mapping); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.store.DefineCanonical(r.Context(), mapping.Word, mapping.Canonical); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, nil)
}

func (s *Server) handleListCanonicalMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.store.ListCanonicalMappings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]canonicalMapping, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, canonicalMapping(m))
	}
	s.writeJSON(w, http.StatusOK, out)
}
