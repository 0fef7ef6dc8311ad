// Package http provides the HTTP transport for the attendance ingestion pipeline
package http

import (
	"time"

	"github.com/google/uuid"

	"attendance/internal/services/attendance/domain"
)

// FaceBoxDTO is the wire shape of a detected face's bounding box
type FaceBoxDTO struct {
	X float64 `json:"x" validate:"gte=0"`
	Y float64 `json:"y" validate:"gte=0"`
	W float64 `json:"w" validate:"gte=1"`
	H float64 `json:"h" validate:"gte=1"`
}

// IngressInput is the wire shape of one edge recognition ingress
type IngressInput struct {
	DeviceID               uuid.UUID  `json:"device_id" validate:"required"`
	CapturedAt             time.Time  `json:"captured_at" validate:"required"`
	Embedding              []float32  `json:"embedding" validate:"required,len=512"`
	TopCandidateEmployeeID *uuid.UUID `json:"top_candidate_employee_id,omitempty"`
	SimilarityScore        *float64   `json:"similarity_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	LivenessScore          *float64   `json:"liveness_score,omitempty" validate:"omitempty,gte=0,lte=1"`
	LivenessPassed         *bool      `json:"liveness_passed,omitempty"`
	FaceBox                *FaceBoxDTO `json:"face_box,omitempty"`
	SnapshotURL            *string    `json:"snapshot_url,omitempty" validate:"omitempty,url"`
	ProcessingDurationMS   *int       `json:"processing_duration_ms,omitempty" validate:"omitempty,gte=0"`
}

// toDomain converts the validated wire payload into the domain Ingress the
// pipeline consumes
func (in IngressInput) toDomain() domain.Ingress {
	ingress := domain.Ingress{
		DeviceID:               in.DeviceID,
		CapturedAt:             in.CapturedAt,
		TopCandidateEmployeeID: in.TopCandidateEmployeeID,
		SimilarityScore:        in.SimilarityScore,
		LivenessScore:          in.LivenessScore,
		LivenessPassed:         in.LivenessPassed,
		SnapshotURL:            in.SnapshotURL,
		ProcessingDurationMS:   in.ProcessingDurationMS,
	}
	copy(ingress.Embedding[:], in.Embedding)
	if in.FaceBox != nil {
		ingress.FaceBox = &domain.FaceBox{X: in.FaceBox.X, Y: in.FaceBox.Y, W: in.FaceBox.W, H: in.FaceBox.H}
	}
	return ingress
}

// OutcomeResponse is the wire shape returned for every ingest call
type OutcomeResponse struct {
	Kind      string  `json:"kind"`
	EventID   *string `json:"event_id,omitempty"`
	DedupHash *string `json:"dedup_hash,omitempty"`
	RecordID  *string `json:"record_id,omitempty"`
	EventType *string `json:"event_type,omitempty"`
	IsLate       *bool `json:"is_late,omitempty"`
	IsEarlyLeave *bool `json:"is_early_leave,omitempty"`
	IsOvertime   *bool `json:"is_overtime,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func toResponse(out *domain.Outcome) OutcomeResponse {
	resp := OutcomeResponse{Kind: string(out.Kind), Reason: out.Reason}
	if out.Err != nil {
		resp.Error = out.Err.Error()
	}
	if out.Event != nil {
		id := out.Event.ID.String()
		resp.EventID = &id
		resp.DedupHash = out.Event.DedupHash
	}
	if out.Record != nil {
		id := out.Record.ID.String()
		resp.RecordID = &id
		eventType := string(out.Record.EventType)
		resp.EventType = &eventType
		resp.IsLate = &out.Record.IsLate
		resp.IsEarlyLeave = &out.Record.IsEarlyLeave
		resp.IsOvertime = &out.Record.IsOvertime
	}
	return resp
}
