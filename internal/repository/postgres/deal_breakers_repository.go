package postgres

import (
	"context"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type dealBreakersRow struct {
	ID                    string         `db:"id"`
	UserID                string         `db:"user_id"`
	MinAge                *int           `db:"min_age"`
	MaxAge                *int           `db:"max_age"`
	MinHeight             *int           `db:"min_height"`
	MaxHeight             *int           `db:"max_height"`
	MaxDistance           *int           `db:"max_distance"`
	AcceptableEthnicities pq.StringArray `db:"acceptable_ethnicities"`
	AcceptableReligions   pq.StringArray `db:"acceptable_religions"`
	AcceptableOffspring   pq.StringArray `db:"acceptable_offspring"`
	AcceptableSmoker      pq.StringArray `db:"acceptable_smoker"`
	AcceptableAlcohol     pq.StringArray `db:"acceptable_alcohol"`
	AcceptableDrugs       pq.StringArray `db:"acceptable_drugs"`
	AcceptableDiets       pq.StringArray `db:"acceptable_diets"`
	AcceptableIncome      pq.StringArray `db:"acceptable_income"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

func (r *dealBreakersRow) toDomain() *domain.DealBreakers {
	return &domain.DealBreakers{
		ID:                    r.ID,
		UserID:                r.UserID,
		MinAge:                r.MinAge,
		MaxAge:                r.MaxAge,
		MinHeight:             r.MinHeight,
		MaxHeight:             r.MaxHeight,
		MaxDistance:           r.MaxDistance,
		AcceptableEthnicities: r.AcceptableEthnicities,
		AcceptableReligions:   r.AcceptableReligions,
		AcceptableOffspring:   r.AcceptableOffspring,
		AcceptableSmoker:      r.AcceptableSmoker,
		AcceptableAlcohol:     r.AcceptableAlcohol,
		AcceptableDrugs:       r.AcceptableDrugs,
		AcceptableDiets:       r.AcceptableDiets,
		AcceptableIncome:      r.AcceptableIncome,
		UpdatedAt:             r.UpdatedAt,
	}
}

type dealBreakersRepository struct {
	conn
}

func NewDealBreakersRepository(db *sqlx.DB) repository.DealBreakersRepository {
	return &dealBreakersRepository{conn{db: db}}
}

func (r *dealBreakersRepository) GetByUserID(ctx context.Context, userID string) (*domain.DealBreakers, error) {
	var row dealBreakersRow
	query := `SELECT * FROM deal_breakers WHERE user_id = $1`
	if err := r.q(ctx).GetContext(ctx, &row, query, userID); err != nil {
		return nil, notFound(err, domain.ErrDealBreakersNotFound)
	}
	return row.toDomain(), nil
}

// nullableArray keeps nil allow-lists as SQL NULL ("no constraint").
func nullableArray(values []string) interface{} {
	if values == nil {
		return nil
	}
	return pq.Array(values)
}

func (r *dealBreakersRepository) Upsert(ctx context.Context, d *domain.DealBreakers) error {
	query := `
		INSERT INTO deal_breakers (
			user_id, min_age, max_age, min_height, max_height, max_distance,
			acceptable_ethnicities, acceptable_religions, acceptable_offspring,
			acceptable_smoker, acceptable_alcohol, acceptable_drugs,
			acceptable_diets, acceptable_income
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			min_age = EXCLUDED.min_age,
			max_age = EXCLUDED.max_age,
			min_height = EXCLUDED.min_height,
			max_height = EXCLUDED.max_height,
			max_distance = EXCLUDED.max_distance,
			acceptable_ethnicities = EXCLUDED.acceptable_ethnicities,
			acceptable_religions = EXCLUDED.acceptable_religions,
			acceptable_offspring = EXCLUDED.acceptable_offspring,
			acceptable_smoker = EXCLUDED.acceptable_smoker,
			acceptable_alcohol = EXCLUDED.acceptable_alcohol,
			acceptable_drugs = EXCLUDED.acceptable_drugs,
			acceptable_diets = EXCLUDED.acceptable_diets,
			acceptable_income = EXCLUDED.acceptable_income,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, updated_at
	`
	return r.q(ctx).QueryRowContext(
		ctx, query,
		d.UserID, d.MinAge, d.MaxAge, d.MinHeight, d.MaxHeight, d.MaxDistance,
		nullableArray(d.AcceptableEthnicities), nullableArray(d.AcceptableReligions),
		nullableArray(d.AcceptableOffspring), nullableArray(d.AcceptableSmoker),
		nullableArray(d.AcceptableAlcohol), nullableArray(d.AcceptableDrugs),
		nullableArray(d.AcceptableDiets), nullableArray(d.AcceptableIncome),
	).Scan(&d.ID, &d.UpdatedAt)
}
