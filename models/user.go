package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User representa un usuario del panel
type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Username  string     `json:"username" gorm:"uniqueIndex;not null;type:varchar(64)"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(100)"`
	Password  string     `json:"-" gorm:"not null;type:varchar(100)"` // Hash bcrypt, nunca se serializa
	FirstName string     `json:"first_name" gorm:"type:varchar(100)"`
	LastName  string     `json:"last_name" gorm:"type:varchar(100)"`
	Role      string     `json:"role" gorm:"not null;type:varchar(20);default:'visualizador'"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	LastLogin *time.Time `json:"last_login"`
}

// TableName define el nombre de la tabla para el modelo User
func (User) TableName() string {
	return "users"
}

// SetPassword guarda el hash bcrypt de la contraseña
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compara la contraseña en claro contra el hash guardado
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// Can indica si el rol del usuario permite la acción sobre el recurso
func (u *User) Can(resource, action string) bool {
	return RoleCan(u.Role, resource, action)
}
