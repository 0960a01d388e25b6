package domain

type ShopStatus struct {
	IsOpen     bool   `bson:"isOpen" json:"isOpen"`
	UpdatedBy  string `bson:"updatedBy" json:"updatedBy"`
	AutoClosed bool   `bson:"autoClosed" json:"autoClosed"`
	Updated    int64  `bson:"updated" json:"updated"`
}

type AuditKind string

const (
	AuditDailyClose   AuditKind = "daily-close"
	AuditStatusChange AuditKind = "status-change"
	AuditError        AuditKind = "error"
)

type AuditRecord struct {
	Id        string    `bson:"_id" json:"id"`
	Kind      AuditKind `bson:"kind" json:"kind"`
	Trigger   string    `bson:"trigger,omitempty" json:"trigger,omitempty"`
	Message   string    `bson:"message" json:"message"`
	LocalTime string    `bson:"localTime,omitempty" json:"localTime,omitempty"`
	Success   int       `bson:"success,omitempty" json:"success"`
	Failure   int       `bson:"failure,omitempty" json:"failure"`
	Attempted int       `bson:"attempted,omitempty" json:"attempted"`
	Created   int64     `bson:"created" json:"created"`
}
