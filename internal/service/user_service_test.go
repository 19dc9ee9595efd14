package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/config"
	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 6}
	svc := NewUserService(cfg, repository.NewUserRepository(db))
	return svc, db
}

func registerTestUser(t *testing.T, svc *UserService, username, role string) {
	t.Helper()
	err := svc.Register(RegisterUserInput{
		Username: username,
		Name:     "Test",
		Surname:  "User",
		Password: "secret123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register user %s failed: %v", username, err)
	}
}

func TestUserRegister(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	registerTestUser(t, svc, "alice", constants.RoleCustomer)

	var user models.User
	if err := db.Where("username = ?", "alice").First(&user).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("role want Customer got %s", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("password must be stored hashed")
	}

	err := svc.Register(RegisterUserInput{Username: "alice", Name: "A", Surname: "B", Password: "secret123", Role: constants.RoleCustomer})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("duplicate register want ErrUserAlreadyExists got %v", err)
	}

	err = svc.Register(RegisterUserInput{Username: "bob", Name: "B", Surname: "C", Password: "secret123", Role: "Guest"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("bad role want ErrInvalidRole got %v", err)
	}

	err = svc.Register(RegisterUserInput{Username: "bob", Name: "B", Surname: "C", Password: "short", Role: constants.RoleCustomer})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password want ErrWeakPassword got %v", err)
	}
}

func TestUserGetByUsernameAccessRules(t *testing.T) {
	svc, _ := setupUserServiceTest(t)
	registerTestUser(t, svc, "alice", constants.RoleCustomer)
	registerTestUser(t, svc, "bob", constants.RoleCustomer)
	registerTestUser(t, svc, "root", constants.RoleAdmin)

	alice := &models.User{Username: "alice", Role: constants.RoleCustomer}
	admin := &models.User{Username: "root", Role: constants.RoleAdmin}

	if _, err := svc.GetByUsername(alice, "alice"); err != nil {
		t.Fatalf("self lookup failed: %v", err)
	}
	if _, err := svc.GetByUsername(alice, "bob"); !errors.Is(err, ErrUserAccessDenied) {
		t.Fatalf("cross lookup want ErrUserAccessDenied got %v", err)
	}
	if _, err := svc.GetByUsername(admin, "bob"); err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}
	if _, err := svc.GetByUsername(admin, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user want ErrUserNotFound got %v", err)
	}
}

func TestUserDeleteRules(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	registerTestUser(t, svc, "alice", constants.RoleCustomer)
	registerTestUser(t, svc, "bob", constants.RoleCustomer)
	registerTestUser(t, svc, "root", constants.RoleAdmin)
	registerTestUser(t, svc, "root2", constants.RoleAdmin)

	alice := &models.User{Username: "alice", Role: constants.RoleCustomer}
	admin := &models.User{Username: "root", Role: constants.RoleAdmin}

	if err := svc.Delete(alice, "bob"); !errors.Is(err, ErrUserAccessDenied) {
		t.Fatalf("customer deleting others want ErrUserAccessDenied got %v", err)
	}
	if err := svc.Delete(admin, "root2"); !errors.Is(err, ErrAdminUndeletable) {
		t.Fatalf("admin deleting admin want ErrAdminUndeletable got %v", err)
	}
	if err := svc.Delete(admin, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown target want ErrUserNotFound got %v", err)
	}
	if err := svc.Delete(admin, "bob"); err != nil {
		t.Fatalf("admin deleting customer failed: %v", err)
	}
	if err := svc.Delete(alice, "alice"); err != nil {
		t.Fatalf("self delete failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("user count want 2 got %d", count)
	}
}

func TestUserDeleteAllNonAdmin(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	registerTestUser(t, svc, "alice", constants.RoleCustomer)
	registerTestUser(t, svc, "mark", constants.RoleManager)
	registerTestUser(t, svc, "root", constants.RoleAdmin)

	if err := svc.DeleteAllNonAdmin(); err != nil {
		t.Fatalf("delete all non admin failed: %v", err)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("load users failed: %v", err)
	}
	if len(users) != 1 || users[0].Username != "root" {
		t.Fatalf("only admin should remain, got %+v", users)
	}
}

func TestUserUpdateInfo(t *testing.T) {
	svc, _ := setupUserServiceTest(t)
	registerTestUser(t, svc, "alice", constants.RoleCustomer)
	registerTestUser(t, svc, "root", constants.RoleAdmin)
	registerTestUser(t, svc, "root2", constants.RoleAdmin)

	alice := &models.User{Username: "alice", Role: constants.RoleCustomer}
	admin := &models.User{Username: "root", Role: constants.RoleAdmin}

	birthdate := models.DateOf(time.Now().AddDate(-30, 0, 0))
	updated, err := svc.UpdateInfo(alice, "alice", UpdateUserInput{
		Name:      "Alice",
		Surname:   "Smith",
		Address:   "Via Roma 1",
		Birthdate: &birthdate,
	})
	if err != nil {
		t.Fatalf("self update failed: %v", err)
	}
	if updated.Address != "Via Roma 1" || updated.Birthdate == nil {
		t.Fatalf("update not applied: %+v", updated)
	}

	future := models.DateOf(time.Now().AddDate(0, 0, 2))
	if _, err := svc.UpdateInfo(alice, "alice", UpdateUserInput{Name: "A", Surname: "S", Birthdate: &future}); !errors.Is(err, ErrInvalidBirthdate) {
		t.Fatalf("future birthdate want ErrInvalidBirthdate got %v", err)
	}

	if _, err := svc.UpdateInfo(alice, "root", UpdateUserInput{Name: "X", Surname: "Y"}); !errors.Is(err, ErrUserAccessDenied) {
		t.Fatalf("customer updating others want ErrUserAccessDenied got %v", err)
	}
	if _, err := svc.UpdateInfo(admin, "root2", UpdateUserInput{Name: "X", Surname: "Y"}); !errors.Is(err, ErrUserAccessDenied) {
		t.Fatalf("admin updating another admin want ErrUserAccessDenied got %v", err)
	}
	if _, err := svc.UpdateInfo(admin, "alice", UpdateUserInput{Name: "X", Surname: "Y"}); err != nil {
		t.Fatalf("admin updating customer failed: %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireNumber: true,
	}
	if err := validatePassword(policy, "Abcdefg1"); err != nil {
		t.Fatalf("compliant password rejected: %v", err)
	}
	if err := validatePassword(policy, "abcdefg1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing upper want ErrWeakPassword got %v", err)
	}
	if err := validatePassword(policy, "Abcdefgh"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing digit want ErrWeakPassword got %v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should accept anything, got %v", err)
	}
}
