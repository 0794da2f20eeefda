package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return translate(r.db.WithContext(ctx).Create(user.FromDomain(u)).Error)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var m user.UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// DeleteAll wipes users; articles referencing them must be gone first.
func (r *UserRepo) DeleteAll(ctx context.Context) error {
	return translate(r.db.WithContext(ctx).Where("1 = 1").Delete(&user.UserModel{}).Error)
}
