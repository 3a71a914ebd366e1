package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

const dashboardColumns = "id, user_id, name, url, icon, created_at, updated_at"

type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDashboard(row rowScanner) (*domain.Dashboard, error) {
	var (
		d                    domain.Dashboard
		icon                 string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.URL, &icon, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d.Icon = domain.IconKey(icon)
	d.CreatedAt = fromNanos(createdAt)
	d.UpdatedAt = fromNanos(updatedAt)
	return &d, nil
}

func (r *DashboardRepository) Find(ctx context.Context, f ports.DashboardFilter) ([]*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := listWhere(f)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+dashboardColumns+" FROM dashboards"+where+" ORDER BY created_at DESC, rowid DESC", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Dashboard, 0)
	for rows.Next() {
		d, err := scanDashboard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DashboardRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := byID(id, ownerID)
	d, err := scanDashboard(r.db.QueryRowContext(ctx, "SELECT "+dashboardColumns+" FROM dashboards"+where, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDashboardNotFound
	}
	return d, err
}

func (r *DashboardRepository) Insert(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *d
	created.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO dashboards ("+dashboardColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		created.ID, created.UserID, created.Name, created.URL, string(created.Icon),
		toNanos(created.CreatedAt), toNanos(created.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	created.CreatedAt = created.CreatedAt.UTC()
	created.UpdatedAt = created.UpdatedAt.UTC()
	return &created, nil
}

func (r *DashboardRepository) Update(ctx context.Context, id, ownerID string, patch domain.DashboardPatch, updatedAt time.Time) (*domain.Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sets := []string{"updated_at = ?"}
	args := []any{toNanos(updatedAt)}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.URL)
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, string(*patch.Icon))
	}

	where, whereArgs := byID(id, ownerID)
	res, err := r.db.ExecContext(ctx, "UPDATE dashboards SET "+strings.Join(sets, ", ")+where, append(args, whereArgs...)...)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, domain.ErrDashboardNotFound
	}

	d, err := scanDashboard(r.db.QueryRowContext(ctx, "SELECT "+dashboardColumns+" FROM dashboards"+where, whereArgs...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDashboardNotFound
	}
	return d, err
}

func (r *DashboardRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := byID(id, ownerID)
	res, err := r.db.ExecContext(ctx, "DELETE FROM dashboards"+where, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

func (r *DashboardRepository) Count(ctx context.Context, f ports.DashboardFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	where, args := listWhere(f)
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dashboards"+where, args...).Scan(&n)
	return n, err
}

func listWhere(f ports.DashboardFilter) (string, []any) {
	var conds []string
	var args []any
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.NameContains != "" {
		conds = append(conds, foldFunc+`(name) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.NameContains))+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func byID(id, ownerID string) (string, []any) {
	if ownerID == "" {
		return " WHERE id = ?", []any{id}
	}
	return " WHERE id = ? AND user_id = ?", []any{id, ownerID}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
