package word

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const tableName = "words"

var columns = []string{
	"id",
	"term",
	"meaning",
	"memo",
	"synonyms",
	"srs_stage",
	"next_review_date",
	"correct_count",
	"wrong_count",
	"importance_count",
	"accuracy_count",
	"last_accuracy_date",
	"is_favorite",
	"is_mastered",
	"created_at",
}

var sortableColumns = map[string]bool{
	ColumnImportanceCount: true,
	ColumnCreatedAt:       true,
	ColumnNextReviewDate:  true,
	ColumnTerm:            true,
}

// DBRepository implements Store on top of a SQL database (SQLite or MySQL).
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Fetch returns the words matching the query.
func (r *DBRepository) Fetch(ctx context.Context, query Query) ([]*Word, error) {
	builder := sq.Select(columns...).From(tableName)
	for _, cond := range filterConditions(query.Filter) {
		builder = builder.Where(cond)
	}
	for _, key := range query.Sort {
		if !sortableColumns[key.Column] {
			return nil, fmt.Errorf("unsupported sort column %q", key.Column)
		}
		direction := "ASC"
		if key.Desc {
			direction = "DESC"
		}
		builder = builder.OrderBy(key.Column + " " + direction)
	}
	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.SelectBuilder.ToSql() > %w", err)
	}

	var rows []Word
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(words) > %w", err)
	}

	words := make([]*Word, len(rows))
	for i := range rows {
		words[i] = &rows[i]
	}
	return words, nil
}

// filterConditions mirrors Filter.Match in SQL. Each condition is ANDed by the caller.
func filterConditions(f Filter) []sq.Sqlizer {
	var conds []sq.Sqlizer

	if group := groupCondition(f.Group); group != nil {
		if f.widensToFavorites() {
			group = sq.Or{group, sq.Eq{"is_favorite": true}}
		}
		conds = append(conds, group)
	}
	if f.DueBy != nil {
		conds = append(conds, sq.Or{
			sq.Eq{"next_review_date": nil},
			sq.LtOrEq{"next_review_date": f.DueBy.UTC()},
		})
	}
	if len(f.IDs) > 0 {
		conds = append(conds, sq.Eq{"id": f.IDs})
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, sq.Or{
			sq.Expr("LOWER(term) LIKE ?", pattern),
			sq.Expr("LOWER(meaning) LIKE ?", pattern),
		})
	}
	return conds
}

func groupCondition(g Group) sq.Sqlizer {
	switch g {
	case GroupNew:
		return sq.Eq{"srs_stage": 0}
	case GroupLearning:
		return sq.Eq{"srs_stage": 1}
	case GroupReviewing:
		return sq.Eq{"srs_stage": 2}
	case GroupMastered:
		return sq.Eq{"is_mastered": true}
	case GroupFavorites:
		return sq.Eq{"is_favorite": true}
	case GroupDifficult:
		return sq.Gt{"importance_count": 0}
	default:
		return nil
	}
}

// Save inserts the word or overwrites every column of an existing row with the same id.
func (r *DBRepository) Save(ctx context.Context, w *Word) error {
	sqlQuery, args, err := sq.Insert(tableName).
		Columns(columns...).
		Values(
			w.ID,
			w.Term,
			w.Meaning,
			w.Memo,
			w.Synonyms,
			w.SRSStage,
			utc(w.NextReviewDate),
			w.CorrectCount,
			w.WrongCount,
			w.ImportanceCount,
			w.AccuracyCount,
			utc(w.LastAccuracyDate),
			w.IsFavorite,
			w.IsMastered,
			w.CreatedAt.UTC(),
		).
		Suffix(r.upsertClause()).
		ToSql()
	if err != nil {
		return fmt.Errorf("squirrel.InsertBuilder.ToSql() > %w", err)
	}

	if _, err := r.db.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("db.ExecContext(upsert word %s) > %w", w.ID, err)
	}
	return nil
}

// utc stores times in one zone so that drivers encoding them as text still compare them in time order.
func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (r *DBRepository) upsertClause() string {
	updates := make([]string, 0, len(columns)-1)
	for _, column := range columns {
		if column == "id" || column == "created_at" {
			continue
		}
		if r.db.DriverName() == "mysql" {
			updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", column, column))
		} else {
			updates = append(updates, fmt.Sprintf("%s = excluded.%s", column, column))
		}
	}
	if r.db.DriverName() == "mysql" {
		return "ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
	}
	return "ON CONFLICT(id) DO UPDATE SET " + strings.Join(updates, ", ")
}

// Delete removes a word. It returns ErrNotFound when no word has the id.
func (r *DBRepository) Delete(ctx context.Context, id string) error {
	sqlQuery, args, err := sq.Delete(tableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("squirrel.DeleteBuilder.ToSql() > %w", err)
	}

	result, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete word %s) > %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete word %s: %w", id, ErrNotFound)
	}
	return nil
}
