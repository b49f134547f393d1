package model

import (
	"time"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/etl"
)

// ETLJob tracks one submitted ETL run on the orchestration side.
type ETLJob struct {
	RunID       string         `json:"run_id" bson:"_id"`
	Request     etl.JobRequest `json:"request" bson:"request"`
	Result      *etl.JobResult `json:"result,omitempty" bson:"result,omitempty"`
	Manifest    *etl.Manifest  `json:"manifest,omitempty" bson:"manifest,omitempty"`
	Status      string         `json:"status" bson:"status"`
	SubmittedAt time.Time      `json:"submitted_at" bson:"submitted_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	SubmittedBy string         `json:"submitted_by,omitempty" bson:"submitted_by,omitempty"`
}
