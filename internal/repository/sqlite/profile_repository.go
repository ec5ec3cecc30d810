package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
)

const profileColumns = `id, username, display_name, age, persona, created_at`

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Age, &p.Persona, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("upserting profile for username: %s", username)

	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO profiles (username)
VALUES (?)
ON CONFLICT(username) DO UPDATE SET username = excluded.username
RETURNING id
`, username).Scan(&id)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", id)
	return r.Get(ctx, id)
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC, id ASC`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, *p)
	}

	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}

// Get returns nil without error when the profile does not exist.
func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	p, err := scanProfile(r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return p, nil
}

// Update writes only the non-nil fields of update. It returns nil without
// error when the profile does not exist.
func (r *profileRepository) Update(ctx context.Context, id int64, update models.ProfileUpdate) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("updating profile: id=%d", id)

	set := map[string]any{}
	if update.DisplayName != nil {
		set["display_name"] = *update.DisplayName
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Persona != nil {
		set["persona"] = *update.Persona
	}
	if len(set) == 0 {
		log.Debug("nothing to update for profile %d", id)
		return r.Get(ctx, id)
	}

	query, args, err := sqlBuilder.Update("profiles").SetMap(set).Where("id = ?", id).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update profile %d: %v", id, err)
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("profile not found for update: id=%d", id)
		return nil, nil
	}
	return r.Get(ctx, id)
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile and related data: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_runs WHERE profile_id = ?`, id); err != nil {
			log.Error("failed to delete runs for profile %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM difficulty_levels WHERE profile_id = ?`, id); err != nil {
			log.Error("failed to delete difficulty levels for profile %d: %v", id, err)
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id); err != nil {
			log.Error("failed to delete profile %d: %v", id, err)
			return err
		}

		log.Debug("profile %d deleted with cascading data", id)
		return nil
	})
}
