package models

import (
	"time"

	"wtg/tools"
)

/************************************************
/**** MARK: USER TYPES ****/
/************************************************/
const USER_TYPE_NORMAL = 0
const USER_TYPE_ADMIN = 1

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// Desativação voluntária (a conta volta sozinha no próximo login).
const USER_STATUS_DEACTIVATED = 3

// User representa um usuario no sistema (conta e perfil achatados numa tabela só;
// o grafo User<->Account do modelo antigo virou colunas simples).
type User struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name            string     `gorm:"not null" json:"name" form:"name"`
	Email           string     `gorm:"not null;unique" json:"email" form:"email"`
	Password        string     `gorm:"not null" json:"password" form:"password"`
	Phone           string     `json:"phone" form:"phone"`
	CPF             string     `gorm:"default:''" json:"cpf" form:"cpf"`
	Birthdate       string     `gorm:"default:''" json:"birthdate" form:"birthdate"`
	Pronouns        string     `gorm:"default:''" json:"pronouns" form:"pronouns"`
	PictureURL      string     `gorm:"column:picture_url" json:"picture_url" form:"picture_url"`
	Status          int        `gorm:"default:0" json:"status" form:"status"`
	Type            int        `gorm:"not null; default:0" json:"type" form:"type"`
	Admin           bool       `gorm:"not null; default: false" json:"admin" form:"admin"`
	CreatedAt       *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	} else if user.Password == "" {
		return "password"
	} else if tools.CheckPassword(user.Password) != "" {
		return tools.CheckPassword(user.Password)
	}
	return ""
}
