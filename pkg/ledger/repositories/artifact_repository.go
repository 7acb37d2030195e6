package repositories

import (
	"context"
	"errors"
	"sync"

	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"gorm.io/gorm"
)

// Keyspace selects the destination table of a creation. The primary keyspace
// backs every lookup and update; the replica keyspace is write-only and is
// never reconciled with the primary.
type Keyspace string

const (
	PrimaryKeyspace Keyspace = "artifact_records"
	ReplicaKeyspace Keyspace = "artifact_replicas"
)

// artifactSequence names the single counter row that feeds both keyspaces.
const artifactSequence = "artifact_sequence"

type ArtifactRepository interface {
	CreateArtifact(ctx context.Context, ks Keyspace, rec *models.ArtifactRecord) (uint64, error)
	GetArtifactByID(ctx context.Context, id uint64) (*models.ArtifactRecord, error)
	UpdateArtifact(ctx context.Context, rec models.ArtifactRecord) error
	CurrentSequence(ctx context.Context) (uint64, error)
}

type artifactRepository struct {
	db *gorm.DB
	// Serializes writers to the counter row. Throughput is low enough that a
	// single write lock is sufficient.
	mu sync.Mutex
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

// CreateArtifact assigns the next sequence id, inserts the record into the
// requested keyspace and advances the counter, all in one transaction. The
// counter is only advanced after the insert succeeded, so a failed insert
// never burns an id.
func (r *artifactRepository) CreateArtifact(ctx context.Context, ks Keyspace, rec *models.ArtifactRecord) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctr, err := loadCounter(tx)
		if err != nil {
			return err
		}
		rec.SequenceID = ctr.Value + 1
		if err := tx.Table(string(ks)).Create(rec).Error; err != nil {
			return err
		}
		return tx.Model(&models.SequenceCounter{}).
			Where("name = ?", artifactSequence).
			Update("value", rec.SequenceID).Error
	})
	if err != nil {
		return 0, err
	}
	return rec.SequenceID, nil
}

// GetArtifactByID reads the primary keyspace only. Absent records return
// (nil, nil); replicas are invisible to every read path.
func (r *artifactRepository) GetArtifactByID(ctx context.Context, id uint64) (*models.ArtifactRecord, error) {
	var rec models.ArtifactRecord
	err := r.db.WithContext(ctx).Where("sequence_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateArtifact overwrites the mutable columns of a primary record. Owner,
// category and created_at are not in the column set and can never change
// through this path.
func (r *artifactRepository) UpdateArtifact(ctx context.Context, rec models.ArtifactRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.WithContext(ctx).Model(&models.ArtifactRecord{}).
		Where("sequence_id = ?", rec.SequenceID).
		Updates(map[string]interface{}{
			"label":          rec.Label,
			"integrity_hash": rec.IntegrityHash,
			"content":        rec.Content,
			"tags":           rec.Tags,
			"modified_at":    rec.ModifiedAt,
		}).Error
}

// CurrentSequence returns the last assigned id, 0 if nothing was created yet.
func (r *artifactRepository) CurrentSequence(ctx context.Context) (uint64, error) {
	var ctr models.SequenceCounter
	err := r.db.WithContext(ctx).Where("name = ?", artifactSequence).First(&ctr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ctr.Value, nil
}

func loadCounter(tx *gorm.DB) (*models.SequenceCounter, error) {
	var ctr models.SequenceCounter
	err := tx.Where("name = ?", artifactSequence).First(&ctr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctr = models.SequenceCounter{Name: artifactSequence, Value: 0}
		if err := tx.Create(&ctr).Error; err != nil {
			return nil, err
		}
		return &ctr, nil
	}
	if err != nil {
		return nil, err
	}
	return &ctr, nil
}
