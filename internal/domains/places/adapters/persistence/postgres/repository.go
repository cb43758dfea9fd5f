package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/Apurer/go-gin-places-api/internal/domains/places/application/types"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/domain"
	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists places in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. db may be a transaction handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type placeRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Address     string    `gorm:"column:address"`
	Lat         float64   `gorm:"column:lat"`
	Lng         float64   `gorm:"column:lng"`
	Image       string    `gorm:"column:image"`
	CreatorID   string    `gorm:"column:creator_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (placeRecord) TableName() string { return "places" }

// Create inserts a place.
func (r *Repository) Create(ctx context.Context, place *domain.Place) (*types.PlaceProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if place == nil {
		return nil, errors.New("place is nil")
	}
	record := toRecord(place)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// GetByID fetches a place by primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (*types.PlaceProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record placeRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", strings.TrimSpace(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// FindByIDs loads the places in one query and returns them in the order of ids.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) ([]*types.PlaceProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*types.PlaceProjection{}, nil
	}
	var records []placeRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]placeRecord, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	result := make([]*types.PlaceProjection, 0, len(records))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			result = append(result, record.toProjection())
		}
	}
	return result, nil
}

// UpdateDetails issues a single UPDATE and reports ErrNotFound when no row matched.
func (r *Repository) UpdateDetails(ctx context.Context, id, title, description string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&placeRecord{}).Where("id = ?", strings.TrimSpace(id)).Updates(map[string]any{
		"title":       title,
		"description": description,
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// Delete removes a place.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&placeRecord{}, "id = ?", strings.TrimSpace(id))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every place ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]*types.PlaceProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []placeRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*types.PlaceProjection, 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres place repository not configured")
	}
	return nil
}

func toRecord(place *domain.Place) placeRecord {
	return placeRecord{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Lat:         place.Location.Lat,
		Lng:         place.Location.Lng,
		Image:       place.Image,
		CreatorID:   place.CreatorID,
	}
}

func (r placeRecord) toProjection() *types.PlaceProjection {
	place := &domain.Place{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Address:     r.Address,
		Location:    domain.Location{Lat: r.Lat, Lng: r.Lng},
		Image:       r.Image,
		CreatorID:   r.CreatorID,
	}
	return types.NewPlaceProjection(place, r.CreatedAt, r.UpdatedAt)
}
