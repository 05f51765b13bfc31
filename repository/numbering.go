package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DailyPrefix builds "ORD-20261019-" style prefixes.
func DailyPrefix(kind string, day time.Time) string {
	return fmt.Sprintf("%s-%s-", kind, day.Format("20060102"))
}

// NextNumber returns prefix + the next 4-digit sequence after the highest
// number already issued with that prefix (soft-deleted rows included).
func NextNumber(ctx context.Context, db *gorm.DB, model any, column, prefix string) (string, error) {
	var last []string
	err := db.WithContext(ctx).Unscoped().Model(model).
		Where(column+" LIKE ?", prefix+"%").
		Order("LENGTH(" + column + ") DESC, " + column + " DESC").
		Limit(1).
		Pluck(column, &last).Error
	if err != nil {
		return "", err
	}

	seq := 0
	if len(last) > 0 {
		seq, _ = strconv.Atoi(strings.TrimPrefix(last[0], prefix))
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}
