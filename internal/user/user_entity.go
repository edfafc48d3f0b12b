package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
)

type User struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string      `gorm:"column:name;type:varchar(255);not null"`
	Email      string      `gorm:"column:email;type:text;not null;uniqueIndex:uq_users_email"`
	Password   string      `gorm:"column:password;type:text;not null"`
	Role       access.Role `gorm:"column:role;type:varchar(50);not null;default:EMPLOYEE"`
	Department *string     `gorm:"column:department;type:varchar(255);index"`
	IsActive   bool        `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Identity converts the row into the evaluator's caller shape.
func (u User) Identity() access.Identity {
	return access.Identity{
		ID:       u.ID.String(),
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
