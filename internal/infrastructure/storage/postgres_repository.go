package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"foundermatch/internal/domain"
	"foundermatch/internal/ports"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("profile not found")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var profileColumns = []string{
	"id", "name", "email", "phone",
	"idea_description", "target_customer", "stage",
	"skills", "looking_for",
	"location", "timeline", "commitment",
	"tagline", "seriousness_score", "embedding",
	"matched", "status", "admin_notes", "match_sent_at", "created_at",
}

// PostgresRepository persists founder profiles and match records.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ProfileRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListProfiles returns all profiles, newest first.
func (r *PostgresRepository) ListProfiles(ctx context.Context) ([]domain.FounderProfile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("founder_profiles").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	return r.queryProfiles(ctx, query, args...)
}

// GetProfile fetches one profile by id; missing rows map to ErrNotFound.
func (r *PostgresRepository) GetProfile(ctx context.Context, id string) (domain.FounderProfile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("founder_profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.FounderProfile{}, fmt.Errorf("build get query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FounderProfile{}, ErrNotFound
	}
	if err != nil {
		return domain.FounderProfile{}, fmt.Errorf("get profile %s: %w", id, err)
	}

	return profile, nil
}

// UpdateProfile applies the admin-editable subset and returns the new row.
// matchSentAt is only consulted when update.Matched is set: a true flag
// stamps it, a false flag clears the column.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, matchSentAt *time.Time) (domain.FounderProfile, error) {
	if update.Empty() {
		return domain.FounderProfile{}, fmt.Errorf("update for %s touches no fields", id)
	}

	builder := psql.Update("founder_profiles").Where(sq.Eq{"id": id})

	if update.Matched != nil {
		builder = builder.Set("matched", *update.Matched)
		if *update.Matched {
			builder = builder.Set("match_sent_at", matchSentAt)
		} else {
			builder = builder.Set("match_sent_at", nil)
		}
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
	}
	if update.AdminNotes != nil {
		builder = builder.Set("admin_notes", *update.AdminNotes)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(profileColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.FounderProfile{}, fmt.Errorf("build update query: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FounderProfile{}, ErrNotFound
	}
	if err != nil {
		return domain.FounderProfile{}, fmt.Errorf("update profile %s: %w", id, err)
	}

	return profile, nil
}

// ListUntagged selects profiles still lacking a tagline, oldest first, so
// re-running the backfill never touches rows already tagged.
func (r *PostgresRepository) ListUntagged(ctx context.Context) ([]domain.FounderProfile, error) {
	query, args, err := psql.Select(profileColumns...).
		From("founder_profiles").
		Where("tagline IS NULL").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build untagged query: %w", err)
	}

	return r.queryProfiles(ctx, query, args...)
}

// SetTagline writes a generated tagline for one profile.
func (r *PostgresRepository) SetTagline(ctx context.Context, id, tagline string) error {
	query, args, err := psql.Update("founder_profiles").
		Set("tagline", tagline).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build tagline query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set tagline for %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("tagline rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListMatches returns all match records, best scores first, with the
// compatibility level derived from the stored total.
func (r *PostgresRepository) ListMatches(ctx context.Context) ([]domain.FounderMatch, error) {
	query, args, err := psql.Select(
		"id", "profile_a", "profile_b",
		"skills_score", "stage_score", "communication_score",
		"vision_score", "values_score", "geo_score", "advantages_score",
		"total_score", "status", "created_at",
	).
		From("founder_matches").
		OrderBy("total_score DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build matches query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.FounderMatch
	for rows.Next() {
		var m domain.FounderMatch
		err := rows.Scan(
			&m.ID, &m.ProfileA, &m.ProfileB,
			&m.Scores.Skills, &m.Scores.Stage, &m.Scores.Communication,
			&m.Scores.Vision, &m.Scores.Values, &m.Scores.Geo, &m.Scores.Advantages,
			&m.TotalScore, &m.Status, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.CompatibilityLevel = domain.LevelForScore(m.TotalScore)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matches iteration: %w", err)
	}

	return matches, nil
}

func (r *PostgresRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]domain.FounderProfile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.FounderProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profiles iteration: %w", err)
	}

	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (domain.FounderProfile, error) {
	var (
		p           domain.FounderProfile
		skills      pq.StringArray
		lookingFor  pq.StringArray
		tagline     sql.NullString
		seriousness sql.NullInt64
		embedding   nullVector
		notes       sql.NullString
		matchSentAt sql.NullTime
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone,
		&p.IdeaDescription, &p.TargetCustomer, &p.Stage,
		&skills, &lookingFor,
		&p.Location, &p.Timeline, &p.Commitment,
		&tagline, &seriousness, &embedding,
		&p.Matched, &p.Status, &notes, &matchSentAt, &p.CreatedAt,
	)
	if err != nil {
		return domain.FounderProfile{}, err
	}

	p.Skills = skills
	p.LookingFor = lookingFor
	if tagline.Valid {
		p.Tagline = &tagline.String
	}
	if seriousness.Valid {
		score := int(seriousness.Int64)
		p.SeriousnessScore = &score
	}
	if embedding.valid {
		p.Embedding = embedding.vec.Slice()
	}
	if notes.Valid {
		p.AdminNotes = notes.String
	}
	if matchSentAt.Valid {
		t := matchSentAt.Time
		p.MatchSentAt = &t
	}

	return p, nil
}

// nullVector scans a nullable pgvector column.
type nullVector struct {
	vec   pgvector.Vector
	valid bool
}

func (n *nullVector) Scan(src any) error {
	if src == nil {
		n.valid = false
		return nil
	}
	if err := n.vec.Scan(src); err != nil {
		return err
	}
	n.valid = true
	return nil
}
