package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type pgStore struct {
	conn *pgxpool.Pool
}

// Store is the union of the stores the postgres backend implements.
type Store interface {
	repository.CardStore
	repository.RefreshStore
	Close()
}

func NewStore(ctx context.Context, connStr string) (Store, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	store := &pgStore{conn: conn}

	log.Info().Msg("running database migrations")
	if err := store.runMigrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (p *pgStore) Close() {
	p.conn.Close()
}

func (p *pgStore) runMigrate(conn *pgxpool.Pool) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	db, err := goose.OpenDBWithDriver("pgx", conn.Config().ConnConfig.ConnString())
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// SaveCards upserts all cards in one transaction, keyed by login, theme
// and variant.
func (p *pgStore) SaveCards(ctx context.Context, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}

	ib := psql.Insert("cards").Columns("id", "login", "theme", "variant", "svg", "rendered_at")
	for _, c := range cards {
		id := c.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		ib = ib.Values(id, c.Login, string(c.Theme), string(c.Variant), c.SVG, c.RenderedAt)
	}
	ib = ib.Suffix("ON CONFLICT (login, theme, variant) DO UPDATE SET svg = EXCLUDED.svg, rendered_at = EXCLUDED.rendered_at")

	sql, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL: %w", err)
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("save cards: %w", err)
	}
	return tx.Commit(ctx)
}

func cardColumns() []string {
	return []string{"c.id", "c.login", "c.theme", "c.variant", "c.svg", "c.rendered_at"}
}

func scanCard(row pgx.Row) (models.Card, error) {
	var c models.Card
	var theme, variant string
	err := row.Scan(&c.ID, &c.Login, &theme, &variant, &c.SVG, &c.RenderedAt)
	c.Theme = models.Theme(theme)
	c.Variant = models.Variant(variant)
	return c, err
}

func (p *pgStore) GetCard(ctx context.Context, login string, theme models.Theme, variant models.Variant) (*models.Card, error) {
	sql, args, err := psql.Select(cardColumns()...).From("cards c").Where(squirrel.Eq{
		"c.login":   login,
		"c.theme":   string(theme),
		"c.variant": string(variant),
	}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	card, err := scanCard(p.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &card, nil
}

func (p *pgStore) FindCards(ctx context.Context, filter models.CardFilter, pag repository.Pagination) (repository.Paginated[models.Card], error) {
	sb := psql.Select(cardColumns()...).From("cards c")

	if filter.Login != nil {
		sb = sb.Where(squirrel.Eq{"c.login": *filter.Login})
	}
	if filter.Theme != nil {
		sb = sb.Where(squirrel.Eq{"c.theme": string(*filter.Theme)})
	}
	if filter.Variant != nil {
		sb = sb.Where(squirrel.Eq{"c.variant": string(*filter.Variant)})
	}

	countSQL, args, err := sb.Prefix("SELECT COUNT(*) FROM (").Suffix(") AS subquery").ToSql()
	if err != nil {
		return repository.Paginated[models.Card]{}, fmt.Errorf("failed to build count SQL: %w", err)
	}

	var totalCount int64
	if err := p.conn.QueryRow(ctx, countSQL, args...).Scan(&totalCount); err != nil {
		return repository.Paginated[models.Card]{}, fmt.Errorf("failed to get total count: %w", err)
	}

	sql, args, err := sb.OrderBy("c.variant", "c.theme").
		Offset(uint64(pag.Offset())).
		Limit(uint64(pag.PerPage)).
		ToSql()
	if err != nil {
		return repository.Paginated[models.Card]{}, fmt.Errorf("failed to build SQL: %w", err)
	}

	rows, err := p.conn.Query(ctx, sql, args...)
	if err != nil {
		return repository.Paginated[models.Card]{}, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return repository.Paginated[models.Card]{}, fmt.Errorf("failed to scan row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return repository.Paginated[models.Card]{}, err
	}

	return repository.Paginated[models.Card]{
		Data:       cards,
		TotalCount: totalCount,
		Page:       pag.Page,
		PerPage:    pag.PerPage,
	}, nil
}

const refreshReturning = "RETURNING id, login, variant, status, error, requested_at, completed_at"

func scanRefresh(row pgx.Row) (*models.Refresh, error) {
	var r models.Refresh
	var variant, status string
	var msg *string
	if err := row.Scan(&r.ID, &r.Login, &variant, &status, &msg, &r.RequestedAt, &r.CompletedAt); err != nil {
		return nil, err
	}
	r.Variant = models.Variant(variant)
	r.Status = models.RefreshStatus(status)
	if msg != nil {
		r.Error = *msg
	}
	return &r, nil
}

func (p *pgStore) SaveRefresh(ctx context.Context, refresh models.Refresh) (*models.Refresh, error) {
	sql, args, err := psql.Insert("refreshes").
		Columns("id", "login", "variant", "status", "requested_at").
		Values(refresh.ID, refresh.Login, string(refresh.Variant), string(refresh.Status), refresh.RequestedAt).
		Suffix(refreshReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	saved, err := scanRefresh(p.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("save refresh: %w", err)
	}
	return saved, nil
}

func (p *pgStore) UpdateRefresh(ctx context.Context, update models.RefreshUpdate) (*models.Refresh, error) {
	ub := psql.Update("refreshes").Where("id = ?", update.ID)
	if update.ExpectStatus != nil {
		ub = ub.Where("status = ?", string(*update.ExpectStatus))
	}
	if update.Status != nil {
		ub = ub.Set("status", string(*update.Status))
	}
	if update.Error != nil {
		ub = ub.Set("error", *update.Error)
	}
	if update.CompletedAt != nil {
		ub = ub.Set("completed_at", *update.CompletedAt)
	}

	sql, args, err := ub.Suffix(refreshReturning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	refresh, err := scanRefresh(p.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		if update.ExpectStatus == nil {
			return nil, repository.ErrRefreshNotFound
		}
		if _, ferr := p.FindRefresh(ctx, update.ID); ferr != nil {
			return nil, ferr
		}
		return nil, repository.ErrRefreshConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update refresh: %w", err)
	}
	return refresh, nil
}

func (p *pgStore) FindRefresh(ctx context.Context, id uuid.UUID) (*models.Refresh, error) {
	sql, args, err := psql.Select("id", "login", "variant", "status", "error", "requested_at", "completed_at").
		From("refreshes").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	refresh, err := scanRefresh(p.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrRefreshNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh: %w", err)
	}
	return refresh, nil
}
