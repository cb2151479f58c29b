package repository

import (
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newMongoID 生成新文档 ID（ObjectID 十六进制）
func newMongoID() string {
	return primitive.NewObjectID().Hex()
}

// idFilter 兼容字符串 ID 与历史数据中的 ObjectID
func idFilter(id string) bson.M {
	id = strings.TrimSpace(id)
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

// idsFilter 批量 ID 查询
func idsFilter(ids []string) bson.M {
	values := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		values = append(values, id)
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			values = append(values, oid)
		}
	}
	return bson.M{"_id": bson.M{"$in": values}}
}

// isNoDocuments 判断是否未找到文档
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// newestFirst 按创建时间倒序并应用分页
func newestFirst(page, pageSize int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if pageSize > 0 {
		opts.SetLimit(int64(pageSize)).SetSkip(int64(pageOffset(page, pageSize)))
	}
	return opts
}

// containsRegex 大小写不敏感的包含匹配
func containsRegex(keyword string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(keyword)), Options: "i"}
}
