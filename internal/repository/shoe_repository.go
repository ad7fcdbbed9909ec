package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"shoedex/internal/model"
)

type ShoeRepository struct {
	db *sql.DB
}

func NewShoeRepository(db *sql.DB) *ShoeRepository {
	return &ShoeRepository{db: db}
}

const shoeColumns = `id, article_id, record_id, brand_name, model, model_key,
	heel_height, forefoot_height, "drop", weight, price,
	upper_breathability, carbon_plate, waterproof, primary_use,
	cushioning_type, surface_type, foot_width, additional_features,
	date, source_link, extraction_method, created_at, updated_at`

func scanShoe(row interface{ Scan(...any) error }) (*model.ShoeRecord, error) {
	var s model.ShoeRecord
	err := row.Scan(
		&s.ID, &s.ArticleID, &s.RecordID, &s.BrandName, &s.Model, &s.ModelKey,
		&s.HeelHeight, &s.ForefootHeight, &s.Drop, &s.Weight, &s.Price,
		&s.UpperBreathability, &s.CarbonPlate, &s.Waterproof, &s.PrimaryUse,
		&s.CushioningType, &s.SurfaceType, &s.FootWidth, pq.Array(&s.AdditionalFeatures),
		&s.Date, &s.SourceLink, &s.ExtractionMethod, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByIdentity looks up the record for the (record_id, model_key) conflict
// pair. Returns nil when the pair is unseen.
func (r *ShoeRepository) GetByIdentity(recordID, modelKey string) (*model.ShoeRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+shoeColumns+`
		FROM shoe
		WHERE record_id = $1 AND model_key = $2
	`, recordID, modelKey)

	s, err := scanShoe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert writes a record keyed on (record_id, model_key). The caller supplies
// the already-merged row; on conflict every spec column is replaced and
// updated_at bumps unconditionally. Returns true when a new row was created.
func (r *ShoeRepository) Upsert(rec *model.ShoeInput) (bool, error) {
	var inserted bool
	err := r.db.QueryRow(`
		INSERT INTO shoe(article_id, record_id, brand_name, model, model_key,
			heel_height, forefoot_height, "drop", weight, price,
			upper_breathability, carbon_plate, waterproof, primary_use,
			cushioning_type, surface_type, foot_width, additional_features,
			date, source_link, extraction_method)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (record_id, model_key) DO UPDATE SET
			article_id = EXCLUDED.article_id,
			brand_name = EXCLUDED.brand_name,
			model = EXCLUDED.model,
			heel_height = EXCLUDED.heel_height,
			forefoot_height = EXCLUDED.forefoot_height,
			"drop" = EXCLUDED."drop",
			weight = EXCLUDED.weight,
			price = EXCLUDED.price,
			upper_breathability = EXCLUDED.upper_breathability,
			carbon_plate = EXCLUDED.carbon_plate,
			waterproof = EXCLUDED.waterproof,
			primary_use = EXCLUDED.primary_use,
			cushioning_type = EXCLUDED.cushioning_type,
			surface_type = EXCLUDED.surface_type,
			foot_width = EXCLUDED.foot_width,
			additional_features = EXCLUDED.additional_features,
			date = EXCLUDED.date,
			source_link = EXCLUDED.source_link,
			extraction_method = EXCLUDED.extraction_method,
			updated_at = now()
		RETURNING (xmax = 0)
	`, rec.ArticleID, rec.RecordID, rec.BrandName, rec.Model, rec.ModelKey,
		rec.HeelHeight, rec.ForefootHeight, rec.Drop, rec.Weight, rec.Price,
		rec.UpperBreathability, rec.CarbonPlate, rec.Waterproof, rec.PrimaryUse,
		rec.CushioningType, rec.SurfaceType, rec.FootWidth, pq.Array(rec.AdditionalFeatures),
		rec.Date, rec.SourceLink, rec.ExtractionMethod).Scan(&inserted)

	return inserted, err
}

// Touch bumps updated_at without changing the value set; used when a merge
// produced no new information.
func (r *ShoeRepository) Touch(recordID, modelKey string) error {
	_, err := r.db.Exec(`
		UPDATE shoe SET updated_at = now()
		WHERE record_id = $1 AND model_key = $2
	`, recordID, modelKey)
	return err
}

func (r *ShoeRepository) GetFeed(brand string, limit, offset int) ([]model.ShoeRecord, error) {
	rows, err := r.db.Query(`
		SELECT `+shoeColumns+`
		FROM shoe
		WHERE ($1 = '' OR lower(brand_name) = lower($1))
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, brand, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shoes []model.ShoeRecord
	for rows.Next() {
		s, err := scanShoe(rows)
		if err != nil {
			return nil, err
		}
		shoes = append(shoes, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shoes, nil
}

func (r *ShoeRepository) GetFeedTotal(brand string) (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM shoe
		WHERE ($1 = '' OR lower(brand_name) = lower($1))
	`, brand).Scan(&total)
	return total, err
}

func (r *ShoeRepository) GetByID(id int64) (*model.ShoeRecord, error) {
	row := r.db.QueryRow(`
		SELECT `+shoeColumns+`
		FROM shoe
		WHERE id = $1
	`, id)

	s, err := scanShoe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

type BrandCount struct {
	Brand string
	Count int
}

func (r *ShoeRepository) GetBrands() ([]BrandCount, error) {
	rows, err := r.db.Query(`
		SELECT brand_name, COUNT(*)
		FROM shoe
		GROUP BY brand_name
		ORDER BY COUNT(*) DESC, brand_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []BrandCount
	for rows.Next() {
		var b BrandCount
		if err := rows.Scan(&b.Brand, &b.Count); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return brands, nil
}
