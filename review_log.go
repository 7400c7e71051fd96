package sm2

import "time"

// ReviewLog records a single review event for an item.
type ReviewLog struct {
	ItemID     int64          `json:"item_id" yaml:"item_id"`
	Quality    Quality        `json:"quality" yaml:"quality"`
	ReviewedAt time.Time      `json:"reviewed_at" yaml:"reviewed_at"`
	Duration   *time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"` // time spent answering, optional.
}
