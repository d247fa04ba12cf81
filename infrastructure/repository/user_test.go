package repository

import "github.com/vfg2006/traffic-dashboard-api/internal/config"

func configAuth() config.Auth {
	return config.Auth{
		AdminEmail:        " Admin@Example.com ",
		AdminPasswordHash: "$2a$10$admin",
		ViewerEmail:       "viewer@example.com",
		ViewerPassHash:    "$2a$10$viewer",
	}
}
