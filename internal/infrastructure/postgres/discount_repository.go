package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/shop-admin-api/internal/domain"
	"github.com/jhoicas/shop-admin-api/internal/domain/entity"
	"github.com/jhoicas/shop-admin-api/internal/domain/repository"
)

var _ repository.DiscountRepository = (*DiscountRepo)(nil)

// DiscountRepo implementación del puerto DiscountRepository sobre PostgreSQL.
// Las reglas viven en discount_rules y sus tags en discount_rule_tags, con un
// índice único sobre lower(tag): es el cierre definitivo de la carrera entre
// dos creaciones concurrentes que reclaman el mismo tag.
type DiscountRepo struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository construye el adaptador de persistencia para descuentos.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepo {
	return &DiscountRepo{pool: pool}
}

// Create inserta la regla y sus tags en una transacción. Si algún tag ya está
// reclamado por otra regla devuelve ErrTagAlreadyClaimed y no persiste nada.
func (r *DiscountRepo) Create(rule *entity.DiscountRule) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO discount_rules (id, kind, value_kind, value, created_at) VALUES ($1, $2, $3, $4, $5)`,
		rule.ID, rule.Kind, rule.ValueKind, rule.Value, rule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert discount rule: %w", err)
	}
	for _, tag := range rule.Tags {
		_, err = tx.Exec(ctx,
			`INSERT INTO discount_rule_tags (rule_id, tag) VALUES ($1, $2)`,
			rule.ID, tag,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrTagAlreadyClaimed
			}
			return fmt.Errorf("insert discount tag: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// List devuelve todas las reglas con sus tags, de la más reciente a la más antigua.
func (r *DiscountRepo) List() ([]*entity.DiscountRule, error) {
	ctx := context.Background()
	query := `
		SELECT r.id, r.kind, r.value_kind, r.value, r.created_at,
			COALESCE(array_agg(t.tag ORDER BY t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}')
		FROM discount_rules r
		LEFT JOIN discount_rule_tags t ON t.rule_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list discount rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.DiscountRule
	for rows.Next() {
		var rule entity.DiscountRule
		if err := rows.Scan(&rule.ID, &rule.Kind, &rule.ValueKind, &rule.Value, &rule.CreatedAt, &rule.Tags); err != nil {
			return nil, fmt.Errorf("scan discount rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}

// FindByTag busca la regla dueña del tag (sin distinguir mayúsculas).
// Devuelve (nil, nil) si ningún tag coincide.
func (r *DiscountRepo) FindByTag(tag string) (*entity.DiscountRule, error) {
	ctx := context.Background()
	query := `
		SELECT r.id, r.kind, r.value_kind, r.value, r.created_at,
			COALESCE(array_agg(t2.tag ORDER BY t2.tag), '{}')
		FROM discount_rules r
		JOIN discount_rule_tags t ON t.rule_id = r.id AND lower(t.tag) = lower($1)
		JOIN discount_rule_tags t2 ON t2.rule_id = r.id
		GROUP BY r.id`
	var rule entity.DiscountRule
	err := r.pool.QueryRow(ctx, query, tag).Scan(
		&rule.ID, &rule.Kind, &rule.ValueKind, &rule.Value, &rule.CreatedAt, &rule.Tags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find discount by tag: %w", err)
	}
	return &rule, nil
}

// ClaimedTags devuelve cuáles de los tags dados ya pertenecen a alguna regla.
func (r *DiscountRepo) ClaimedTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	query := `
		SELECT t.tag FROM discount_rule_tags t
		WHERE lower(t.tag) = ANY (SELECT lower(unnest($1::text[])))`
	rows, err := r.pool.Query(ctx, query, tags)
	if err != nil {
		return nil, fmt.Errorf("claimed tags: %w", err)
	}
	defer rows.Close()
	var claimed []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan claimed tag: %w", err)
		}
		claimed = append(claimed, tag)
	}
	return claimed, rows.Err()
}
