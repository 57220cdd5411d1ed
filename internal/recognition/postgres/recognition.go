package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	recognitionDatamodel "github.com/hasanuzzaman/attendance-core/internal/core/datamodel/recognition"
	"github.com/hasanuzzaman/attendance-core/internal/recognition"
)

// uniqueViolation is the Postgres SQLSTATE for a unique-constraint failure.
const uniqueViolation = "23505"

// dedupHashIndex is the partial unique index on recognition_events.dedup_hash.
const dedupHashIndex = "idx_recognition_events_dedup_hash"

// RecognitionRepository implements recognition.Repository using GORM.
type RecognitionRepository struct {
	db *gorm.DB
}

func NewRecognitionRepository(db *gorm.DB) recognition.Repository {
	return &RecognitionRepository{db: db}
}

func (r *RecognitionRepository) ExistsByFingerprint(hash string) (bool, error) {
	var count int64
	err := r.db.Model(&recognitionDatamodel.RecognitionEvent{}).Where("dedup_hash = ?", hash).Count(&count).Error
	return count > 0, err
}

func (r *RecognitionRepository) Insert(event *recognition.RecognitionEvent) error {
	row := recognition.ToDataModel(event)
	if err := r.db.Create(row).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == dedupHashIndex {
			return recognition.ErrDuplicateHash
		}
		return err
	}
	event.ID = row.ID
	return nil
}

func (r *RecognitionRepository) RecentFor(employeeID, deviceID uuid.UUID, since time.Time) ([]*recognition.RecognitionEvent, error) {
	var rows []*recognitionDatamodel.RecognitionEvent
	err := r.db.Where("employee_id = ? AND device_id = ? AND captured_at >= ? AND status <> ?",
		employeeID, deviceID, since, recognition.StatusDuplicate).
		Order("captured_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

func (r *RecognitionRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("captured_at < ?", cutoff).Delete(&recognitionDatamodel.RecognitionEvent{})
	return result.RowsAffected, result.Error
}

func (r *RecognitionRepository) ListByDateRange(from, to time.Time) ([]*recognition.RecognitionEvent, error) {
	var rows []*recognitionDatamodel.RecognitionEvent
	err := r.db.Where("captured_at >= ? AND captured_at <= ?", from, to).
		Order("captured_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

func toDomainSlice(rows []*recognitionDatamodel.RecognitionEvent) []*recognition.RecognitionEvent {
	out := make([]*recognition.RecognitionEvent, len(rows))
	for i, row := range rows {
		out[i] = recognition.FromDataModel(row)
	}
	return out
}
