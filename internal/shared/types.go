package shared

// Asynq task type names
const (
	TypeNotifyProducer   = "show:notify_producer"
	TypeBroadcastShow    = "show:broadcast"
	TypePaymentSubmitted = "payment:submitted"
	TypePaymentReviewed  = "payment:reviewed"
)

// Asynq queue names
const (
	QueueShows    = "shows"
	QueuePayments = "payments"
)

// Account roles, set by the external auth provider
const (
	RoleAudience = "audience"
	RoleProducer = "producer"
	RoleAdmin    = "admin"
)
