package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the users and places contexts. Adapters never automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&placeRecord{},
	)
}

// User schema mirrors the users Postgres adapter. place_ids is the owned-place
// set maintained by the places unit of work.
type userRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name      string         `gorm:"column:name;not null"`
	Email     string         `gorm:"column:email;not null;uniqueIndex"`
	Password  string         `gorm:"column:password;not null"`
	Image     string         `gorm:"column:image"`
	PlaceIDs  pq.StringArray `gorm:"column:place_ids;type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Place schema mirrors the places Postgres adapter.
type placeRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Address     string    `gorm:"column:address;not null"`
	Lat         float64   `gorm:"column:lat"`
	Lng         float64   `gorm:"column:lng"`
	Image       string    `gorm:"column:image"`
	CreatorID   string    `gorm:"column:creator_id;type:varchar(64);not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (placeRecord) TableName() string { return "places" }
