package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

var _ ports.OwnerRepository = (*OwnerRepository)(nil)

// OwnerRepository reads and writes users.place_ids.
type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

type ownerRecord struct {
	ID       string         `gorm:"primaryKey;column:id"`
	PlaceIDs pq.StringArray `gorm:"column:place_ids;type:text[]"`
}

func (ownerRecord) TableName() string { return "users" }

// Get locks the user row for the rest of the enclosing transaction.
func (r *OwnerRepository) Get(ctx context.Context, id string) (*domain.Owner, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ownerRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "place_ids").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOwnerNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// SavePlaces overwrites the place-id set.
func (r *OwnerRepository) SavePlaces(ctx context.Context, owner *domain.Owner) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if owner == nil {
		return errors.New("owner is nil")
	}
	result := r.db.WithContext(ctx).Model(&ownerRecord{}).Where("id = ?", owner.ID).Updates(map[string]any{
		"place_ids":  pq.StringArray(append([]string{}, owner.PlaceIDs...)),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOwnerNotFound
	}
	return nil
}

// List returns the place-id set of every user.
func (r *OwnerRepository) List(ctx context.Context) ([]*domain.Owner, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ownerRecord
	if err := r.db.WithContext(ctx).Select("id", "place_ids").Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	owners := make([]*domain.Owner, 0, len(records))
	for i := range records {
		owners = append(owners, records[i].toDomain())
	}
	return owners, nil
}

func (r *OwnerRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres owner repository not configured")
	}
	return nil
}

func (r ownerRecord) toDomain() *domain.Owner {
	return &domain.Owner{ID: r.ID, PlaceIDs: append([]string{}, r.PlaceIDs...)}
}
