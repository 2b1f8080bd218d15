package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fondosar/backoffice_api/internal/apperrors"
	"github.com/fondosar/backoffice_api/internal/core/domain"
	portsrepo "github.com/fondosar/backoffice_api/internal/core/ports/repositories"
	"github.com/fondosar/backoffice_api/internal/models"
	"github.com/fondosar/backoffice_api/internal/utils/mapping"
)

// Categories, clients and providers are small reference catalogs with near
// identical shapes, so their repositories share this file.

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, name, kind, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		m.CategoryID, m.Name, m.Kind,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("category %s already exists: %w", category.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, created_by, last_updated_at, last_updated_by
		FROM categories WHERE category_id = $1;
	`
	var m models.Category
	err := r.db.QueryRow(ctx, query, categoryID).Scan(
		&m.CategoryID, &m.Name, &m.Kind,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, kind, created_at, created_by, last_updated_at, last_updated_by
		FROM categories ORDER BY kind, name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $1, kind = $2, last_updated_at = $3, last_updated_by = $4
		WHERE category_id = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query, m.Name, m.Kind, m.LastUpdatedAt, m.LastUpdatedBy, m.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("category is referenced by transactions: %w", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("category not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

const clientSelectColumns = `client_id, name, tax_id, email, phone, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (client_id, name, tax_id, email, phone, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.ClientID, m.Name, m.TaxID, m.Email, m.Phone, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("client %s already exists: %w", client.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients WHERE client_id = $1;`
	var m models.Client
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context, includeInactive bool) ([]domain.Client, error) {
	query := `SELECT ` + clientSelectColumns + ` FROM clients`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(&m.ClientID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $1, tax_id = $2, email = $3, phone = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE client_id = $8;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.TaxID, m.Email, m.Phone, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ClientID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

type PgxProviderRepository struct {
	db *pgxpool.Pool
}

func newPgxProviderRepository(db *pgxpool.Pool) portsrepo.ProviderRepository {
	return &PgxProviderRepository{db: db}
}

var _ portsrepo.ProviderRepository = (*PgxProviderRepository)(nil)

const providerSelectColumns = `provider_id, name, tax_id, email, phone, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	m := mapping.ToModelProvider(provider)
	query := `
		INSERT INTO providers (provider_id, name, tax_id, email, phone, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.ProviderID, m.Name, m.TaxID, m.Email, m.Phone, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("provider %s already exists: %w", provider.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save provider %s: %w", provider.ProviderID, err)
	}
	return nil
}

func (r *PgxProviderRepository) FindProviderByID(ctx context.Context, providerID string) (*domain.Provider, error) {
	query := `SELECT ` + providerSelectColumns + ` FROM providers WHERE provider_id = $1;`
	var m models.Provider
	err := r.db.QueryRow(ctx, query, providerID).Scan(
		&m.ProviderID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find provider by ID %s: %w", providerID, err)
	}
	provider := mapping.ToDomainProvider(m)
	return &provider, nil
}

func (r *PgxProviderRepository) ListProviders(ctx context.Context, includeInactive bool) ([]domain.Provider, error) {
	query := `SELECT ` + providerSelectColumns + ` FROM providers`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	providers := []domain.Provider{}
	for rows.Next() {
		var m models.Provider
		if err := rows.Scan(&m.ProviderID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		providers = append(providers, mapping.ToDomainProvider(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider rows: %w", err)
	}
	return providers, nil
}

func (r *PgxProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	m := mapping.ToModelProvider(provider)
	query := `
		UPDATE providers
		SET name = $1, tax_id = $2, email = $3, phone = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE provider_id = $8;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.TaxID, m.Email, m.Phone, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy, m.ProviderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", provider.ProviderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("provider not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
