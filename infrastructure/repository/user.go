package repository

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-dashboard-api/internal/config"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

type UserRepository interface {
	GetUserByEmail(email string) (*domain.User, error)
}

// configUserRepository guarda os usuários definidos na configuração (admin e viewer)
type configUserRepository struct {
	users map[string]*domain.User
}

func NewConfigUserRepository(cfg config.Auth) UserRepository {
	users := make(map[string]*domain.User)

	add := func(email, hash string, roleID int) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || hash == "" {
			return
		}
		users[email] = &domain.User{Email: email, PasswordHash: hash, RoleID: roleID}
	}

	add(cfg.AdminEmail, cfg.AdminPasswordHash, domain.RoleAdmin)
	add(cfg.ViewerEmail, cfg.ViewerPassHash, domain.RoleViewer)

	if cfg.Enabled && len(users) == 0 {
		logrus.Warn("Autenticação habilitada sem usuários configurados; nenhum login será aceito")
	}

	return &configUserRepository{users: users}
}

// GetUserByEmail retorna nil quando o usuário não existe
func (r *configUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}
