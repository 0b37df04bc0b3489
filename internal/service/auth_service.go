package service

import (
	"errors"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/model"
	"cybersafe_backend/internal/repository"
	"cybersafe_backend/internal/util"
	"cybersafe_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles admin authentication: credential checks, session
// tokens, and first-run bootstrap.
type AuthService struct {
	AdminRepo *repository.AdminRepository
	AuditRepo *repository.AuditRepository
	Cfg       *config.Config
}

func NewAuthService(adminRepo *repository.AdminRepository, auditRepo *repository.AuditRepository, cfg *config.Config) *AuthService {
	return &AuthService{AdminRepo: adminRepo, AuditRepo: auditRepo, Cfg: cfg}
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (string, error) {
	admin, err := s.AdminRepo.FindByUsername(username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		// Burn a verification anyway so a missing user costs the same
		// as a wrong password.
		util.VerifyPassword(password, dummyHash)
		return "", util.ErrInvalidCredentials
	}

	ok, err := util.VerifyPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return "", util.ErrInvalidCredentials
	}

	token, err := util.GenerateAdminJWT(admin.Username, s.Cfg.Admin.JWTSecret, s.Cfg.Admin.SessionTTL)
	if err != nil {
		return "", err
	}

	s.AuditRepo.Log(admin.Username, "login", "")
	return token, nil
}

// Logout just records the event; the cookie is cleared by the controller.
func (s *AuthService) Logout(username string) {
	s.AuditRepo.Log(username, "logout", "")
}

// EnsureBootstrapAdmin creates the initial admin account when the table is
// empty and a bootstrap password is configured. Without one the back office
// stays locked until an account is created out of band.
func (s *AuthService) EnsureBootstrapAdmin() error {
	count, err := s.AdminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.Cfg.Admin.BootstrapPW == "" {
		logger.Log.Warn("no admin accounts exist and no bootstrap password is configured")
		return nil
	}

	hash, err := util.HashPassword(s.Cfg.Admin.BootstrapPW)
	if err != nil {
		return err
	}
	if err := s.AdminRepo.Create(&model.Admin{Username: "admin", PasswordHash: hash}); err != nil {
		return err
	}
	logger.Log.Info("bootstrap admin account created", zap.String("username", "admin"))
	return nil
}

// dummyHash is a throwaway argon2id hash used to equalize login timing for
// unknown usernames. The plaintext is not a valid password anywhere.
var dummyHash = func() string {
	h, err := util.HashPassword("timing-equalizer")
	if err != nil {
		panic(err)
	}
	return h
}()
