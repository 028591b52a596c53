package api

import (
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/mention"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/search"
	"github.com/Kitan-Dara06/n-atlas-scenapps/internal/transcript"
)

// ProcessVideoRequest asks the service to transcribe a video and detect
// which of the supplied users are verbally mentioned in it.
type ProcessVideoRequest struct {
	// VideoPath is the path to the video file on shared storage.
	VideoPath string `json:"video_path"`

	// VideoID is the unique video identifier assigned by the backend.
	VideoID string `json:"video_id"`

	// Users is the participant set considered for mention detection.
	Users []mention.Participant `json:"users"`
}

// ProcessVideoResponse carries the transcript (for the backend to store) and
// the detected mentions (for tagging).
type ProcessVideoResponse struct {
	VideoID          string            `json:"video_id"`
	MentionedUserIDs []int64           `json:"mentioned_user_ids"`
	MentionedUsers   []mention.Mention `json:"mentioned_users"`
	MentionCount     int               `json:"mention_count"`
	Transcript       string            `json:"transcript"`
	DurationSeconds  float64           `json:"duration_seconds"`
	ProcessedAt      string            `json:"processed_at"`
	Status           string            `json:"status"`

	// Corrections lists name rewrites applied by the phonetic correction
	// pass. Omitted when the pass is disabled or made no changes.
	Corrections []transcript.Correction `json:"corrections,omitempty"`
}

// SearchRequest asks the service to search a transcript batch. The backend
// sends all candidate transcripts; nothing is persisted here.
type SearchRequest struct {
	Query       string              `json:"query"`
	Transcripts []search.Transcript `json:"transcripts"`
}

// SearchResponse carries the ranked results for a query.
type SearchResponse struct {
	Query        string          `json:"query"`
	Results      []search.Result `json:"results"`
	TotalResults int             `json:"total_results"`
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Detail string `json:"detail"`
}
