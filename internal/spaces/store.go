package spaces

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"path/filepath"
	"sort"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/ppmfit/internal/lifecycle"
	"github.com/HendryAvila/ppmfit/internal/scoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// goose keeps its settings in package globals.
var migrateMu sync.Mutex

// SQLiteStore is the Repository backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
	qb sq.StatementBuilderType
}

var _ Repository = (*SQLiteStore)(nil)

// Open opens (creating if needed) the database at path and applies
// pending migrations.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "spaces: create data dir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "spaces: open database")
	}
	// Pragmas are per connection; one connection keeps them all in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "spaces: pragma %q", p)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

func migrate(db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "spaces: set migration dialect")
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return errors.Wrap(err, "spaces: migrate")
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ─── Spaces ──────────────────────────────────────────────────────────────────

// Create stores a new space with its criteria, tools and ratings. An empty
// ID is replaced with a fresh UUID and an empty state means framing. A later
// state is only accepted if the lifecycle machine could reach it from
// framing with the space's progress.
// Timestamps are set on s.
func (s *SQLiteStore) Create(ctx context.Context, sp *Space) error {
	if sp == nil || sp.Name == "" {
		return errors.Wrap(ErrInvalidInput, "space name is required")
	}
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	for i := range sp.Criteria {
		normalizeCriterion(&sp.Criteria[i])
		if err := scoring.ValidateCriterion(sp.Criteria[i]); err != nil {
			return errors.Mark(err, ErrInvalidInput)
		}
	}
	for _, t := range sp.Tools {
		if err := scoring.ValidateTool(t); err != nil {
			return errors.Mark(err, ErrInvalidInput)
		}
	}
	if err := sp.settleState(); err != nil {
		return err
	}

	ts := now()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := execSQ(ctx, tx, s.qb.Insert("spaces").
			Columns("id", "name", "description", "state", "created_at", "updated_at").
			Values(sp.ID, sp.Name, sp.Description, string(sp.State), ts, ts))
		if err != nil {
			if isUniqueViolation(err) {
				return errors.Wrapf(ErrConflict, "space %q", sp.ID)
			}
			return errors.Wrap(err, "insert space")
		}

		for i, c := range sp.Criteria {
			if err := s.insertCriterion(ctx, tx, sp.ID, c, i); err != nil {
				return err
			}
		}
		for i, t := range sp.Tools {
			if err := s.insertTool(ctx, tx, sp.ID, t, i); err != nil {
				return err
			}
		}
		for _, tr := range sp.History {
			if err := s.insertTransition(ctx, tx, sp.ID, tr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	sp.CreatedAt, sp.UpdatedAt = ts, ts
	return nil
}

// Get loads a space with everything attached to it.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Space, error) {
	sp := &Space{}
	var state string
	q, args, err := s.qb.Select("id", "name", "description", "state", "created_at", "updated_at").
		From("spaces").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	err = s.db.QueryRowContext(ctx, q, args...).
		Scan(&sp.ID, &sp.Name, &sp.Description, &state, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "space %q", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get space")
	}
	sp.State = lifecycle.State(state)

	if sp.Criteria, err = s.loadCriteria(ctx, id); err != nil {
		return nil, err
	}
	if sp.Tools, err = s.loadTools(ctx, id); err != nil {
		return nil, err
	}
	if sp.History, err = s.loadHistory(ctx, id); err != nil {
		return nil, err
	}
	return sp, nil
}

// List returns all spaces, most recently updated first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := querySQ(ctx, s.db, s.qb.
		Select("s.id", "s.name", "s.state", "s.updated_at").
		Column("(SELECT COUNT(*) FROM criteria c WHERE c.space_id = s.id)").
		Column("(SELECT COUNT(*) FROM tools t WHERE t.space_id = s.id)").
		From("spaces s").
		OrderBy("s.updated_at DESC", "s.id"))
	if err != nil {
		return nil, errors.Wrap(err, "list spaces")
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var state string
		if err := rows.Scan(&sum.ID, &sum.Name, &state, &sum.UpdatedAt, &sum.Criteria, &sum.Tools); err != nil {
			return nil, errors.Wrap(err, "scan space")
		}
		sum.State = lifecycle.State(state)
		out = append(out, sum)
	}
	return out, errors.Wrap(rows.Err(), "list spaces")
}

// Delete removes a space and everything attached to it.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := execSQ(ctx, s.db, s.qb.Delete("spaces").Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "delete space")
	}
	return requireAffected(res, errors.Wrapf(ErrNotFound, "space %q", id))
}

// ─── Criteria ────────────────────────────────────────────────────────────────

// AddCriterion appends a criterion to the space. A zero weight means the
// default weight, untouched.
func (s *SQLiteStore) AddCriterion(ctx context.Context, spaceID string, c scoring.Criterion) error {
	normalizeCriterion(&c)
	if err := scoring.ValidateCriterion(c); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touch(ctx, tx, spaceID); err != nil {
			return err
		}
		return s.insertCriterion(ctx, tx, spaceID, c, -1)
	})
}

// SetWeight assigns a criterion's importance and marks it touched.
func (s *SQLiteStore) SetWeight(ctx context.Context, spaceID, criterionID string, weight int) error {
	if err := scoring.ValidateRating(weight); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touch(ctx, tx, spaceID); err != nil {
			return err
		}
		res, err := execSQ(ctx, tx, s.qb.Update("criteria").
			Set("user_rating", weight).
			Set("touched", true).
			Where(sq.Eq{"space_id": spaceID, "id": criterionID}))
		if err != nil {
			return errors.Wrap(err, "set weight")
		}
		return requireAffected(res, errors.Wrapf(ErrNotFound, "criterion %q", criterionID))
	})
}

// ─── Tools ───────────────────────────────────────────────────────────────────

// AddTool appends a candidate tool and its initial ratings.
func (s *SQLiteStore) AddTool(ctx context.Context, spaceID string, t scoring.Tool) error {
	if err := scoring.ValidateTool(t); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touch(ctx, tx, spaceID); err != nil {
			return err
		}
		return s.insertTool(ctx, tx, spaceID, t, -1)
	})
}

// RemoveTool deletes a tool and its ratings.
func (s *SQLiteStore) RemoveTool(ctx context.Context, spaceID, toolID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touch(ctx, tx, spaceID); err != nil {
			return err
		}
		res, err := execSQ(ctx, tx, s.qb.Delete("tools").
			Where(sq.Eq{"space_id": spaceID, "id": toolID}))
		if err != nil {
			return errors.Wrap(err, "remove tool")
		}
		return requireAffected(res, errors.Wrapf(ErrNotFound, "tool %q", toolID))
	})
}

// SetRating records how well a tool does on one criterion, replacing any
// previous rating.
func (s *SQLiteStore) SetRating(ctx context.Context, spaceID, toolID, criterionID string, score int) error {
	if err := scoring.ValidateRating(score); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.touch(ctx, tx, spaceID); err != nil {
			return err
		}
		if err := s.mustExist(ctx, tx, "tools", spaceID, toolID); err != nil {
			return errors.Wrapf(err, "tool %q", toolID)
		}
		if err := s.mustExist(ctx, tx, "criteria", spaceID, criterionID); err != nil {
			return errors.Wrapf(err, "criterion %q", criterionID)
		}
		_, err := execSQ(ctx, tx, s.qb.Insert("ratings").
			Columns("space_id", "tool_id", "criterion_id", "score").
			Values(spaceID, toolID, criterionID, score).
			Suffix("ON CONFLICT (space_id, tool_id, criterion_id) DO UPDATE SET score = excluded.score"))
		return errors.Wrap(err, "set rating")
	})
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

// SaveState implements Repository.
func (s *SQLiteStore) SaveState(ctx context.Context, spaceID string, state lifecycle.State, t *lifecycle.Transition) error {
	if err := lifecycle.ValidateState(state); err != nil {
		return errors.Mark(err, ErrInvalidInput)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := execSQ(ctx, tx, s.qb.Update("spaces").
			Set("state", string(state)).
			Set("updated_at", now()).
			Where(sq.Eq{"id": spaceID}))
		if err != nil {
			return errors.Wrap(err, "save state")
		}
		if err := requireAffected(res, errors.Wrapf(ErrNotFound, "space %q", spaceID)); err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		return s.insertTransition(ctx, tx, spaceID, *t)
	})
}

// ─── Internals ───────────────────────────────────────────────────────────────

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func execSQ(ctx context.Context, db execer, b sq.Sqlizer) (sql.Result, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	return db.ExecContext(ctx, q, args...)
}

func querySQ(ctx context.Context, db querier, b sq.Sqlizer) (*sql.Rows, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	return db.QueryContext(ctx, q, args...)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// touch bumps updated_at and doubles as the existence check for the space.
func (s *SQLiteStore) touch(ctx context.Context, tx *sql.Tx, spaceID string) error {
	res, err := execSQ(ctx, tx, s.qb.Update("spaces").
		Set("updated_at", now()).
		Where(sq.Eq{"id": spaceID}))
	if err != nil {
		return errors.Wrap(err, "touch space")
	}
	return requireAffected(res, errors.Wrapf(ErrNotFound, "space %q", spaceID))
}

func (s *SQLiteStore) mustExist(ctx context.Context, tx *sql.Tx, table, spaceID, id string) error {
	q, args, err := s.qb.Select("COUNT(*)").From(table).
		Where(sq.Eq{"space_id": spaceID, "id": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "build query")
	}
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return errors.Wrapf(err, "lookup %s", table)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nextPosition appends after the current last row when pos is negative.
func nextPosition(table, spaceID string, pos int) any {
	if pos >= 0 {
		return pos
	}
	return sq.Expr("(SELECT COALESCE(MAX(position), -1) + 1 FROM "+table+" WHERE space_id = ?)", spaceID)
}

func (s *SQLiteStore) insertCriterion(ctx context.Context, tx *sql.Tx, spaceID string, c scoring.Criterion, pos int) error {
	_, err := execSQ(ctx, tx, s.qb.Insert("criteria").
		Columns("space_id", "id", "name", "description", "user_rating", "touched", "position").
		Values(spaceID, c.ID, c.Name, c.Description, c.UserRating, c.Touched, nextPosition("criteria", spaceID, pos)))
	if isUniqueViolation(err) {
		return errors.Wrapf(ErrConflict, "criterion %q", c.ID)
	}
	return errors.Wrapf(err, "insert criterion %q", c.ID)
}

func (s *SQLiteStore) insertTool(ctx context.Context, tx *sql.Tx, spaceID string, t scoring.Tool, pos int) error {
	_, err := execSQ(ctx, tx, s.qb.Insert("tools").
		Columns("space_id", "id", "name", "description", "position").
		Values(spaceID, t.ID, t.Name, t.Description, nextPosition("tools", spaceID, pos)))
	if isUniqueViolation(err) {
		return errors.Wrapf(ErrConflict, "tool %q", t.ID)
	}
	if err != nil {
		return errors.Wrapf(err, "insert tool %q", t.ID)
	}

	// Sorted for a deterministic insert order.
	ids := make([]string, 0, len(t.Ratings))
	for id := range t.Ratings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, cid := range ids {
		_, err := execSQ(ctx, tx, s.qb.Insert("ratings").
			Columns("space_id", "tool_id", "criterion_id", "score").
			Values(spaceID, t.ID, cid, t.Ratings[cid]))
		if isForeignKeyViolation(err) {
			return errors.Wrapf(ErrInvalidInput, "tool %q rates unknown criterion %q", t.ID, cid)
		}
		if err != nil {
			return errors.Wrapf(err, "insert rating %s/%s", t.ID, cid)
		}
	}
	return nil
}

func (s *SQLiteStore) insertTransition(ctx context.Context, tx *sql.Tx, spaceID string, t lifecycle.Transition) error {
	ts := t.Timestamp
	if ts == "" {
		ts = now()
	}
	_, err := execSQ(ctx, tx, s.qb.Insert("transitions").
		Columns("space_id", "from_state", "to_state", "trigger_name", "created_at").
		Values(spaceID, string(t.From), string(t.To), string(t.Trigger), ts))
	return errors.Wrap(err, "insert transition")
}

func (s *SQLiteStore) loadCriteria(ctx context.Context, spaceID string) ([]scoring.Criterion, error) {
	rows, err := querySQ(ctx, s.db, s.qb.
		Select("id", "name", "description", "user_rating", "touched").
		From("criteria").Where(sq.Eq{"space_id": spaceID}).OrderBy("position"))
	if err != nil {
		return nil, errors.Wrap(err, "load criteria")
	}
	defer rows.Close()

	out := []scoring.Criterion{}
	for rows.Next() {
		var c scoring.Criterion
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.UserRating, &c.Touched); err != nil {
			return nil, errors.Wrap(err, "scan criterion")
		}
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "load criteria")
}

func (s *SQLiteStore) loadTools(ctx context.Context, spaceID string) ([]scoring.Tool, error) {
	rows, err := querySQ(ctx, s.db, s.qb.
		Select("id", "name", "description").
		From("tools").Where(sq.Eq{"space_id": spaceID}).OrderBy("position"))
	if err != nil {
		return nil, errors.Wrap(err, "load tools")
	}
	out := []scoring.Tool{}
	index := map[string]int{}
	for rows.Next() {
		t := scoring.Tool{Ratings: map[string]int{}}
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scan tool")
		}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "load tools")
	}

	rows, err = querySQ(ctx, s.db, s.qb.
		Select("tool_id", "criterion_id", "score").
		From("ratings").Where(sq.Eq{"space_id": spaceID}))
	if err != nil {
		return nil, errors.Wrap(err, "load ratings")
	}
	defer rows.Close()
	for rows.Next() {
		var toolID, criterionID string
		var score int
		if err := rows.Scan(&toolID, &criterionID, &score); err != nil {
			return nil, errors.Wrap(err, "scan rating")
		}
		if i, ok := index[toolID]; ok {
			out[i].Ratings[criterionID] = score
		}
	}
	return out, errors.Wrap(rows.Err(), "load ratings")
}

func (s *SQLiteStore) loadHistory(ctx context.Context, spaceID string) ([]lifecycle.Transition, error) {
	rows, err := querySQ(ctx, s.db, s.qb.
		Select("from_state", "to_state", "trigger_name", "created_at").
		From("transitions").Where(sq.Eq{"space_id": spaceID}).OrderBy("id"))
	if err != nil {
		return nil, errors.Wrap(err, "load history")
	}
	defer rows.Close()

	out := []lifecycle.Transition{}
	for rows.Next() {
		var from, to, trigger string
		var t lifecycle.Transition
		if err := rows.Scan(&from, &to, &trigger, &t.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scan transition")
		}
		t.From, t.To, t.Trigger = lifecycle.State(from), lifecycle.State(to), lifecycle.Trigger(trigger)
		out = append(out, t)
	}
	return out, errors.Wrap(rows.Err(), "load history")
}

func normalizeCriterion(c *scoring.Criterion) {
	if c.UserRating == 0 {
		c.UserRating = scoring.DefaultWeight
	}
}
