package model

import (
	"time"

	"github.com/makazi-lab/makazi/pkg/domain/types"
)

// ChatResponse is what one conversational turn produces. Only the response
// text enters the session history; sources and confidence are per-turn
// artifacts.
type ChatResponse struct {
	Response        string           `json:"response"`
	ConversationID  ConversationID   `json:"conversation_id"`
	Sources         []string         `json:"sources"`
	Confidence      float64          `json:"confidence"`
	Timestamp       time.Time        `json:"timestamp"`
	Recommendations []Recommendation `json:"recommended_properties,omitempty"`
}

// KnowledgeFileInfo describes one corpus file inside a status report.
type KnowledgeFileInfo struct {
	FileName     string    `json:"file_name"`
	FileType     string    `json:"file_type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	Chunks       int       `json:"chunks"`
}

// KnowledgeStatus summarizes the loaded corpus.
type KnowledgeStatus struct {
	State          types.StoreState    `json:"state"`
	TotalDocuments int                 `json:"total_documents"`
	TotalChunks    int                 `json:"total_chunks"`
	LastLoaded     time.Time           `json:"last_loaded,omitzero"`
	Documents      []KnowledgeFileInfo `json:"documents"`
}
