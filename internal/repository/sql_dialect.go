package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// containsClause 生成大小写不敏感的包含匹配条件
func containsClause(db *gorm.DB, column string) string {
	return containsClauseByDialect(dbDialectName(db), column)
}

func containsClauseByDialect(dialect, column string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return column + " ILIKE ?"
	default:
		// sqlite 的 LIKE 对 ASCII 默认大小写不敏感
		return column + " LIKE ?"
	}
}

// likePattern 转义通配符并包裹为包含匹配
func likePattern(keyword string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(keyword)) + "%"
}
