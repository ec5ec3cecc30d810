package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
)

const defaultRunLimit = 50

var runColumns = []string{
	"id", "session_id", "profile_id", "game_id", "difficulty", "score", "accuracy",
	"total_rounds", "attempts", "correct_count", "streak", "average_response_ms",
	"metadata", "started_at", "completed_at",
}

type runRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository implementation
func NewRunRepository(db *sql.DB) repository.RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Insert(ctx context.Context, run models.RunSummary) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("inserting run: profile_id=%d, game_id=%s, session_id=%s", run.ProfileID, run.GameID, run.SessionID)

	var metadata sql.NullString
	if len(run.Metadata) > 0 {
		raw, err := json.Marshal(run.Metadata)
		if err != nil {
			return 0, fmt.Errorf("encode run metadata: %w", err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	query, args, err := sqlBuilder.Insert("game_runs").
		Columns(runColumns[1:]...).
		Values(
			run.SessionID, run.ProfileID, string(run.GameID), int(run.Difficulty), run.Score, run.Accuracy,
			run.TotalRounds, run.Attempts, run.CorrectCount, run.Streak, run.AverageResponseMs,
			metadata, run.StartedAt.UTC(), run.CompletedAt.UTC(),
		).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert run: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("run inserted: id=%d", id)
	return id, nil
}

func applyRunFilter(query squirrel.SelectBuilder, filter models.RunFilter) squirrel.SelectBuilder {
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"profile_id": filter.ProfileID})
	}
	if filter.GameID != "" {
		query = query.Where(squirrel.Eq{"game_id": string(filter.GameID)})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"completed_at": filter.Since.UTC()})
	}
	return query
}

func (r *runRepository) List(ctx context.Context, filter models.RunFilter) ([]models.RunSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("listing runs with filter: profile_id=%d, game_id=%s, limit=%d, offset=%d",
		filter.ProfileID, filter.GameID, filter.Limit, filter.Offset)

	query := applyRunFilter(sqlBuilder.Select(runColumns...).From("game_runs"), filter)

	dir := orderDirection(filter.OrderDir)
	query = query.OrderBy("completed_at "+dir, "id "+dir)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list runs: %v", err)
		return nil, err
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var (
			run      models.RunSummary
			gameID   string
			level    int
			metadata sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.SessionID, &run.ProfileID, &gameID, &level, &run.Score, &run.Accuracy,
			&run.TotalRounds, &run.Attempts, &run.CorrectCount, &run.Streak, &run.AverageResponseMs,
			&metadata, &run.StartedAt, &run.CompletedAt); err != nil {
			log.Error("failed to scan run row: %v", err)
			return nil, err
		}
		run.GameID = models.GameID(gameID)
		run.Difficulty = models.Difficulty(level)
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &run.Metadata); err != nil {
				log.Warn("ignoring malformed metadata on run %d: %v", run.ID, err)
			}
		}
		runs = append(runs, run)
	}
	log.Debug("found %d runs", len(runs))
	return runs, rows.Err()
}

func (r *runRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("run_repo")
	log.Debug("counting runs with filter: profile_id=%d, game_id=%s", filter.ProfileID, filter.GameID)

	sqlStr, args, err := applyRunFilter(sqlBuilder.Select("COUNT(*)").From("game_runs"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count runs: %v", err)
		return 0, err
	}
	return count, nil
}
