// Package api exposes the service's HTTP surface: video processing
// (transcribe + detect mentions) and transcript search. Wire formats, status
// mapping, and input validation live here; the engines under
// internal/mention and internal/search stay pure.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/media"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/mention"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/observe"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/search"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/transcript"
	"github.com/Kitan-Dara06/n-atlas-scenapps/pkg/provider/asr"
)

// AudioExtractor pulls the audio track out of a video file. Implemented by
// [media.Extractor]; an interface so tests can stub extraction.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath, videoID string) (string, error)
	Cleanup(audioPath string)
}

// Config assembles the collaborators the HTTP handlers depend on.
type Config struct {
	// ASR is the transcription provider. When nil, /process-video answers
	// 503 — the search endpoint keeps working.
	ASR asr.Provider

	// ASRName labels the provider in metrics (e.g., "whisper-native").
	ASRName string

	// Extractor pulls audio tracks out of videos. When nil, a default
	// ffmpeg extractor is used.
	Extractor AudioExtractor

	// Corrector, when non-nil, rewrites misheard participant names in the
	// raw transcript before detection.
	Corrector *transcript.Corrector

	// Metrics receives instrumentation. When nil, the package-level
	// default instruments are used.
	Metrics *observe.Metrics
}

// Server holds the HTTP handlers. Safe for concurrent use.
type Server struct {
	asr       asr.Provider
	asrName   string
	extractor AudioExtractor
	corrector *transcript.Corrector
	metrics   *observe.Metrics
}

// New creates a Server from cfg, filling in defaults for nil collaborators.
func New(cfg Config) *Server {
	if cfg.Extractor == nil {
		cfg.Extractor = media.NewExtractor()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observe.DefaultMetrics()
	}
	return &Server{
		asr:       cfg.ASR,
		asrName:   cfg.ASRName,
		extractor: cfg.Extractor,
		corrector: cfg.Corrector,
		metrics:   cfg.Metrics,
	}
}

// Register adds the processing and search routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /process-video", s.handleProcessVideo)
	mux.HandleFunc("POST /search", s.handleSearch)
}

// handleProcessVideo runs the full pipeline: extract audio, transcribe,
// optionally correct names, detect mentions. The transcript is returned to
// the backend for storage — nothing is persisted here.
func (s *Server) handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observe.Logger(ctx)

	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.VideoPath == "" || req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "video_path and video_id are required")
		return
	}
	if s.asr == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription provider not configured")
		return
	}

	s.metrics.ActiveJobs.Add(ctx, 1)
	defer s.metrics.ActiveJobs.Add(ctx, -1)

	extractStart := time.Now()
	audioPath, err := s.extractor.ExtractAudio(ctx, req.VideoPath, req.VideoID)
	s.metrics.ExtractionDuration.Record(ctx, time.Since(extractStart).Seconds())
	if err != nil {
		log.Error("audio extraction failed", "video_id", req.VideoID, "err", err)
		if errors.Is(err, media.ErrNoAudioTrack) {
			writeError(w, http.StatusBadRequest, "video has no audio track")
			return
		}
		writeError(w, http.StatusBadRequest, "audio extraction failed")
		return
	}
	defer s.extractor.Cleanup(audioPath)

	transcribeStart := time.Now()
	result, err := s.asr.Transcribe(ctx, audioPath)
	s.metrics.TranscriptionDuration.Record(ctx, time.Since(transcribeStart).Seconds())
	if err != nil {
		s.metrics.RecordTranscription(ctx, s.asrName, "error")
		log.Error("transcription failed", "video_id", req.VideoID, "err", err)
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	s.metrics.RecordTranscription(ctx, s.asrName, "success")

	text := result.Text
	var corrections []transcript.Correction
	if s.corrector != nil {
		text, corrections = s.corrector.Correct(text, participantNames(req.Users))
	}

	detectStart := time.Now()
	ids, mentions := mention.NewDetector(req.Users).Detect(text)
	s.metrics.DetectionDuration.Record(ctx, time.Since(detectStart).Seconds())
	s.metrics.MentionsDetected.Add(ctx, int64(len(ids)))

	// IDs and counts only — transcript content stays out of the logs.
	log.Info("video processed",
		"video_id", req.VideoID,
		"mention_count", len(ids),
		"correction_count", len(corrections),
		"duration_seconds", result.DurationSeconds,
	)

	writeJSON(w, http.StatusOK, ProcessVideoResponse{
		VideoID:          req.VideoID,
		MentionedUserIDs: ids,
		MentionedUsers:   mentions,
		MentionCount:     len(ids),
		Transcript:       text,
		DurationSeconds:  result.DurationSeconds,
		ProcessedAt:      time.Now().UTC().Format(time.RFC3339),
		Status:           "success",
		Corrections:      corrections,
	})
}

// handleSearch runs the search engine over the transcript batch supplied in
// the request body.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	start := time.Now()
	results := search.Transcripts(req.Query, req.Transcripts)
	s.metrics.SearchDuration.Record(ctx, time.Since(start).Seconds())
	s.metrics.RecordSearch(ctx, len(results))

	observe.Logger(ctx).Info("search completed",
		"query_len", len(req.Query),
		"transcripts", len(req.Transcripts),
		"results", len(results),
	)

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:        req.Query,
		Results:      results,
		TotalResults: len(results),
	})
}

// participantNames collects the spoken name forms of the participants for
// the correction pass: first name, last name, full name, and the spaced
// username ("nedu_codes" → "nedu codes"). Deduplicated case-insensitively.
func participantNames(participants []mention.Participant) []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	for _, p := range participants {
		if p.ID == 0 {
			continue
		}
		add(p.FirstName)
		add(p.LastName)
		if p.FirstName != "" && p.LastName != "" {
			add(p.FirstName + " " + p.LastName)
		}
		if p.Username != "" {
			username := strings.TrimPrefix(p.Username, "@")
			add(strings.NewReplacer("_", " ", ".", " ").Replace(username))
		}
	}

	return names
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"detail":"encoding failure"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error body in the shape clients expect.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
