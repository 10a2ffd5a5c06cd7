package entity

import "time"

type Notification struct {
	ID        string    `db:"id" gorm:"primaryKey;type:char(36)"`
	UserID    string    `db:"user_id" gorm:"type:char(36);not null;index"`
	Message   string    `db:"message" gorm:"type:text;not null"`
	IsRead    bool      `db:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time `db:"created_at"`

	User *User `db:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string { return "notifications" }

type NotificationFilter struct {
	UserID *string
	IsRead *bool
}

type DemoRequest struct {
	ID        string    `db:"id" gorm:"primaryKey;type:char(36)"`
	FullName  string    `db:"full_name" gorm:"size:255;not null"`
	Email     string    `db:"email" gorm:"size:254;not null"`
	Company   string    `db:"company" gorm:"size:255"`
	Phone     string    `db:"phone" gorm:"size:20"`
	Datetime  time.Time `db:"datetime"`
	Message   string    `db:"message" gorm:"type:text"`
	CreatedAt time.Time `db:"created_at"`
}

func (DemoRequest) TableName() string { return "demo_requests" }

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&User{}, &Driver{}, &Client{},
		&Car{}, &CarDoc{},
		&JobPost{}, &JobBid{}, &JobOffer{}, &Trip{},
		&Payment{}, &Rating{},
		&ChatRoom{}, &ChatMessage{},
		&Notification{}, &DemoRequest{},
	}
}
