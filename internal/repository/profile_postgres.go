package repository

import (
	"context"
	"database/sql"
	"errors"

	"calculators/internal/common/database"
	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/metrics"
	"calculators/internal/models"
)

const profileColumns = `user_id, title, first_name, surname, phone, date_of_birth,
	license_type, license_period, occupation, street_address, city, county, post_code, driver_history`

// ProfilePostgresStore keeps profiles in the broker_profiles table.
type ProfilePostgresStore struct {
	db *database.PostgresClient
}

func NewProfilePostgresStore(db *database.PostgresClient) *ProfilePostgresStore {
	return &ProfilePostgresStore{db: db}
}

func (s *ProfilePostgresStore) FindByUserID(ctx context.Context, userID string) (*models.BrokerProfile, error) {
	row := s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM broker_profiles WHERE user_id = $1`, userID)

	var (
		p                              models.BrokerProfile
		street, city, county, postCode sql.NullString
		history                        sql.NullString
	)
	err := row.Scan(&p.UserID, &p.Title, &p.FirstName, &p.Surname, &p.Phone, &p.DateOfBirth,
		&p.LicenseType, &p.LicensePeriod, &p.Occupation, &street, &city, &county, &postCode, &history)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.ObserveStore(StoreProfiles, "find", nil)
		return nil, apperrors.NewProfileNotFoundError(userID)
	}
	metrics.ObserveStore(StoreProfiles, "find", err)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(StoreProfiles, "find", err)
	}

	p.Address = models.Address{
		StreetAddress: fromNull(street),
		City:          fromNull(city),
		County:        fromNull(county),
		PostCode:      fromNull(postCode),
	}
	p.DriverHistory = history.String
	return &p, nil
}

func (s *ProfilePostgresStore) Save(ctx context.Context, p *models.BrokerProfile) (bool, error) {
	res, err := s.db.Exec(ctx, `INSERT INTO broker_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO NOTHING`, profileArgs(p)...)
	return s.affected("save", res, err)
}

func (s *ProfilePostgresStore) Update(ctx context.Context, p *models.BrokerProfile) (bool, error) {
	res, err := s.db.Exec(ctx, `UPDATE broker_profiles SET
		title = $2, first_name = $3, surname = $4, phone = $5, date_of_birth = $6,
		license_type = $7, license_period = $8, occupation = $9,
		street_address = $10, city = $11, county = $12, post_code = $13, driver_history = $14,
		updated_at = now()
		WHERE user_id = $1`, profileArgs(p)...)
	return s.affected("update", res, err)
}

func (s *ProfilePostgresStore) Delete(ctx context.Context, userID string) (bool, error) {
	res, err := s.db.Exec(ctx, `DELETE FROM broker_profiles WHERE user_id = $1`, userID)
	return s.affected("delete", res, err)
}

func (s *ProfilePostgresStore) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM broker_profiles WHERE user_id = $1)`, userID).Scan(&exists)
	metrics.ObserveStore(StoreProfiles, "exists", err)
	if err != nil {
		return false, apperrors.NewStoreUnavailableError(StoreProfiles, "exists", err)
	}
	return exists, nil
}

func (s *ProfilePostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM broker_profiles`).Scan(&n)
	metrics.ObserveStore(StoreProfiles, "count", err)
	if err != nil {
		return 0, apperrors.NewStoreUnavailableError(StoreProfiles, "count", err)
	}
	return n, nil
}

func (s *ProfilePostgresStore) DeleteAll(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM broker_profiles`)
	metrics.ObserveStore(StoreProfiles, "delete_all", err)
	if err != nil {
		return apperrors.NewStoreUnavailableError(StoreProfiles, "delete_all", err)
	}
	return nil
}

func (s *ProfilePostgresStore) affected(op string, res sql.Result, err error) (bool, error) {
	if err == nil {
		var n int64
		n, err = res.RowsAffected()
		if err == nil {
			metrics.ObserveStore(StoreProfiles, op, nil)
			return n > 0, nil
		}
	}
	metrics.ObserveStore(StoreProfiles, op, err)
	return false, apperrors.NewStoreUnavailableError(StoreProfiles, op, err)
}

func profileArgs(p *models.BrokerProfile) []interface{} {
	return []interface{}{
		p.UserID, p.Title, p.FirstName, p.Surname, p.Phone, p.DateOfBirth,
		p.LicenseType, p.LicensePeriod, p.Occupation,
		toNull(p.Address.StreetAddress), toNull(p.Address.City), toNull(p.Address.County), toNull(p.Address.PostCode),
		toNull(nonEmpty(p.DriverHistory)),
	}
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
