package entity

import "time"

// Installer representa un instalador del taller.
type Installer struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
