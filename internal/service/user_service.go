package service

import (
	"context"

	"github.com/ezelectronics/ezelectronics/internal/cache"
	"github.com/ezelectronics/ezelectronics/internal/config"
	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUserInput 用户注册输入
type RegisterUserInput struct {
	Username string
	Name     string
	Surname  string
	Password string
	Role     string
}

// UpdateUserInput 用户资料更新输入
type UpdateUserInput struct {
	Name      string
	Surname   string
	Address   string
	Birthdate *models.Date
}

// UserService 用户服务
type UserService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository) *UserService {
	return &UserService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Register 注册新用户
func (s *UserService) Register(input RegisterUserInput) error {
	if !constants.IsValidRole(input.Role) {
		return ErrInvalidRole
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return err
	}

	existing, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		Username:     input.Username,
		Name:         input.Name,
		Surname:      input.Surname,
		Role:         input.Role,
		PasswordHash: string(hash),
	}
	return s.userRepo.Create(user)
}

// List 全量用户列表（管理端）
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// ListByRole 按角色过滤用户列表（管理端）
func (s *UserService) ListByRole(role string) ([]models.User, error) {
	if !constants.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.userRepo.ListByRole(role)
}

// GetByUsername 获取用户信息；非管理员只能查看自己
func (s *UserService) GetByUsername(requester *models.User, username string) (*models.User, error) {
	if requester == nil {
		return nil, ErrUserAccessDenied
	}
	if requester.Role != constants.RoleAdmin && requester.Username != username {
		return nil, ErrUserAccessDenied
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete 删除用户；非管理员只能删除自己，管理员不能删除其他管理员
func (s *UserService) Delete(requester *models.User, username string) error {
	if requester == nil {
		return ErrUserAccessDenied
	}
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if requester.Role != constants.RoleAdmin && requester.Username != username {
		return ErrUserAccessDenied
	}
	if target.Role == constants.RoleAdmin && requester.Username != username {
		return ErrAdminUndeletable
	}

	affected, err := s.userRepo.Delete(username)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	_ = cache.DelUserAuthState(context.Background(), target.ID)
	return nil
}

// DeleteAllNonAdmin 删除全部非管理员用户（管理端）
func (s *UserService) DeleteAllNonAdmin() error {
	return s.userRepo.DeleteAllNonAdmin()
}

// UpdateInfo 更新用户资料；生日不能晚于今天
func (s *UserService) UpdateInfo(requester *models.User, username string, input UpdateUserInput) (*models.User, error) {
	if requester == nil {
		return nil, ErrUserAccessDenied
	}
	if requester.Role != constants.RoleAdmin && requester.Username != username {
		return nil, ErrUserAccessDenied
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if requester.Role == constants.RoleAdmin && user.Role == constants.RoleAdmin && requester.Username != username {
		return nil, ErrUserAccessDenied
	}

	if input.Birthdate != nil && input.Birthdate.After(models.Today()) {
		return nil, ErrInvalidBirthdate
	}

	user.Name = input.Name
	user.Surname = input.Surname
	user.Address = input.Address
	user.Birthdate = input.Birthdate
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
