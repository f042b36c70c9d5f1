package common

// NamespaceHeaderName is the gRPC metadata key carrying the storage
// namespace (profile) a request is bound to.
const NamespaceHeaderName = "x-namespace"

// Storage keys of the persisted collections.
const (
	SessionKey    = "task_manager_token"
	UsersKey      = "task_manager_users"
	TasksKey      = "task_manager_tasks"
	CategoriesKey = "task_manager_categories"
)
