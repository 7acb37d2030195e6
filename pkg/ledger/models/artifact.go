package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TagList is the ordered tag collection of an artifact, persisted as a JSON
// text column.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("unsupported tag column type %T", src)
}

// ArtifactRecord is the ledger record for a single artifact. The same struct
// backs both keyspaces (primary and replica); the destination table is chosen
// by the repository. Owner, Category and CreatedAt are written once at
// creation and never touched by the update path.
type ArtifactRecord struct {
	SequenceID    uint64  `gorm:"column:sequence_id;primaryKey;autoIncrement:false" json:"sequenceId"`
	Label         string  `gorm:"column:label" json:"label"`
	Owner         string  `gorm:"column:owner;index" json:"owner"`
	IntegrityHash string  `gorm:"column:integrity_hash" json:"integrityHash"`
	Content       string  `gorm:"column:content" json:"content"`
	Category      string  `gorm:"column:category" json:"category"`
	Tags          TagList `gorm:"column:tags;type:text" json:"tags"`
	CreatedAt     uint64  `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	ModifiedAt    uint64  `gorm:"column:modified_at" json:"modifiedAt"`
}

func (ArtifactRecord) TableName() string { return "artifact_records" }

// SequenceCounter is the single-row allocator backing sequence ids. The row is
// advanced inside the same transaction that inserts a new record, after the
// insert itself.
type SequenceCounter struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value uint64 `gorm:"column:value"`
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
