package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/helpdesk/internal/util"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Transaction runs fn against a repo bound to a single DB transaction.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func (r *GormRepo) db(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx)
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// search ORs a LIKE over the given columns.
func search(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return q
		}
		like := "%" + term + "%"
		conds := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			conds[i] = col + " LIKE ?"
			args[i] = like
		}
		return q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// paginate counts the filtered set and then loads one page into dest.
// base must return a fresh query each call; project, when set, adds the
// select list to the page query only.
func paginate(base func() *gorm.DB, project func(*gorm.DB) *gorm.DB, page util.PageRequest, order string, dest any) (int64, error) {
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	q := base()
	if project != nil {
		q = project(q)
	}
	err := q.
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Scan(dest).Error
	return total, err
}

func exists(q *gorm.DB) (bool, error) {
	var n int64
	if err := q.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
