package entities

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FareObservation is one sighting of a priced itinerary. Rows are append-only:
// corrections are inserted as new observations, existing rows are never
// updated or deleted.
type FareObservation struct {
	ID            string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Airline       string         `gorm:"column:airline;type:text;not null" json:"airline"`
	Origin        string         `gorm:"column:origin;type:varchar(4);not null;index:idx_fare_obs_route" json:"origin"`
	Destination   string         `gorm:"column:destination;type:varchar(4);not null;index:idx_fare_obs_route" json:"destination"`
	DepartureDate string         `gorm:"column:departure_date;type:varchar(10)" json:"departureDate"`
	Price         float64        `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	ScrapedAt     time.Time      `gorm:"column:scraped_at;not null;index" json:"scrapedAt"`

	// Optional itinerary detail; absent on older rows.
	DepartureTime    string        `gorm:"column:departure_time;type:varchar(20)" json:"departureTime,omitempty"`
	ArrivalTime      string        `gorm:"column:arrival_time;type:varchar(20)" json:"arrivalTime,omitempty"`
	DurationMinutes  sql.NullInt64 `gorm:"column:duration_minutes;type:integer" json:"-"`
	FlightNumber     string        `gorm:"column:flight_number;type:varchar(10)" json:"flightNumber,omitempty"`
	StopCount        int           `gorm:"column:stop_count;type:integer;default:0" json:"stopCount"`
	BookingReference string        `gorm:"column:booking_reference;type:text" json:"bookingReference,omitempty"`
}

// TableName specifies the table name for GORM
func (FareObservation) TableName() string {
	return "fare_observations"
}

// BeforeCreate assigns the row ID. Application-side so the same model
// works on Postgres and the sqlite test databases.
func (o *FareObservation) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
