package constants

// 管理员角色
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 全部合法订单状态
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// 留言状态常量
const (
	MessageStatusUnread  = "unread"
	MessageStatusRead    = "read"
	MessageStatusReplied = "replied"
)

// 数据库驱动
const (
	DBDriverMongo    = "mongo"
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

// 图片存储后端
const (
	UploadBackendLocal            = "local"
	UploadBackendCloudinaryStream = "cloudinary_stream"
	UploadBackendCloudinaryStaged = "cloudinary_staged"
)

// 图片上传输入方式
const (
	UploadInputMultipart = "multipart"
	UploadInputBase64    = "base64"
)

// MaxImageSize 图片大小上限 5 MiB
const MaxImageSize int64 = 5 * 1024 * 1024

// AllowedImageTypes 允许的图片 MIME
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/webp",
	"image/gif",
}

// 异步队列
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 实时事件类型
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
	EventMessageCreated     = "message.created"
	EventMessageReplied     = "message.replied"
)

// gin 上下文键
const (
	CtxAdminID     = "admin_id"
	CtxAdminEmail  = "admin_email"
	CtxAdminRole   = "admin_role"
	CtxAdminClaims = "admin_claims"
	CtxRequestID   = "request_id"
)

// 异步任务类型
const (
	TaskMessageReplyEmail  = "message:reply_email"
	TaskOrderCreatedNotify = "order:created_notify"
	TaskOrderStatusNotify  = "order:status_notify"
)
