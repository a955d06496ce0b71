package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const venueColumns = `
	id, name, description, category, address, city, state, zip_code, lat, lng,
	partnership_slot, payment_tier, service_radius_miles, photo_urls, menu_url,
	website_url, phone, impression_count, click_count, date_count, is_active, created_at`

type venueRow struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	Description        *string        `db:"description"`
	Category           string         `db:"category"`
	Address            string         `db:"address"`
	City               string         `db:"city"`
	State              string         `db:"state"`
	ZipCode            string         `db:"zip_code"`
	Lat                float64        `db:"lat"`
	Lng                float64        `db:"lng"`
	PartnershipSlot    int            `db:"partnership_slot"`
	PaymentTier        string         `db:"payment_tier"`
	ServiceRadiusMiles float64        `db:"service_radius_miles"`
	PhotoURLs          pq.StringArray `db:"photo_urls"`
	MenuURL            *string        `db:"menu_url"`
	WebsiteURL         *string        `db:"website_url"`
	Phone              *string        `db:"phone"`
	ImpressionCount    int            `db:"impression_count"`
	ClickCount         int            `db:"click_count"`
	DateCount          int            `db:"date_count"`
	IsActive           bool           `db:"is_active"`
	CreatedAt          time.Time      `db:"created_at"`
}

func (r *venueRow) toDomain() *domain.Venue {
	return &domain.Venue{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		Category:           r.Category,
		Address:            r.Address,
		City:               r.City,
		State:              r.State,
		ZipCode:            r.ZipCode,
		Lat:                r.Lat,
		Lng:                r.Lng,
		PartnershipSlot:    r.PartnershipSlot,
		PaymentTier:        r.PaymentTier,
		ServiceRadiusMiles: r.ServiceRadiusMiles,
		PhotoURLs:          []string(r.PhotoURLs),
		MenuURL:            r.MenuURL,
		WebsiteURL:         r.WebsiteURL,
		Phone:              r.Phone,
		ImpressionCount:    r.ImpressionCount,
		ClickCount:         r.ClickCount,
		DateCount:          r.DateCount,
		IsActive:           r.IsActive,
		CreatedAt:          r.CreatedAt,
	}
}

type venueRepository struct {
	conn
}

func NewVenueRepository(db *sqlx.DB) repository.VenueRepository {
	return &venueRepository{conn{db: db}}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (
			name, description, category, address, city, state, zip_code, lat, lng,
			partnership_slot, payment_tier, service_radius_miles, photo_urls,
			menu_url, website_url, phone, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`
	return r.q(ctx).QueryRowContext(
		ctx, query,
		v.Name, v.Description, v.Category, v.Address, v.City, v.State, v.ZipCode, v.Lat, v.Lng,
		v.PartnershipSlot, v.PaymentTier, v.ServiceRadiusMiles, pq.Array(nonNil(v.PhotoURLs)),
		v.MenuURL, v.WebsiteURL, v.Phone, v.IsActive,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	var row venueRow
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	if err := r.q(ctx).GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, domain.ErrVenueNotFound)
	}
	return row.toDomain(), nil
}

func (r *venueRepository) GetActive(ctx context.Context, category string) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE is_active = true`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY partnership_slot, id`

	var rows []venueRow
	if err := r.q(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	venues := make([]*domain.Venue, 0, len(rows))
	for i := range rows {
		venues = append(venues, rows[i].toDomain())
	}
	return venues, nil
}

func (r *venueRepository) IncrementCounter(ctx context.Context, counter domain.VenueCounter, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	switch counter {
	case domain.VenueImpressions, domain.VenueClicks, domain.VenueDates:
	default:
		return fmt.Errorf("unknown venue counter %q", counter)
	}

	// counter is one of the constants above, never user input
	query := fmt.Sprintf(`UPDATE venues SET %[1]s = %[1]s + 1 WHERE id = ANY($1)`, counter)
	rows, err := rowsAffected(r.q(ctx).ExecContext(ctx, query, pq.Array(ids)))
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}
