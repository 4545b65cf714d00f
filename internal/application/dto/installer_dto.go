package dto

import "time"

// CreateInstallerRequest body para POST /api/installers.
type CreateInstallerRequest struct {
	Name string `json:"name"`
}

// InstallerResponse instalador persistido.
type InstallerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
