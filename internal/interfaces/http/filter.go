package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/domain"
	"github.com/tu-usuario/tintpro-api/internal/domain/repository"
)

// parseFilter lee los query params comunes de filtrado: installer_id,
// date_from y date_to (YYYY-MM-DD). date_to se lleva al final del día para
// que el rango sea inclusivo.
func parseFilter(c *fiber.Ctx) (repository.Filter, error) {
	f := repository.Filter{InstallerID: c.Query("installer_id")}
	if s := c.Query("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return repository.Filter{}, domain.ErrInvalidInput
		}
		f.DateFrom = &t
	}
	if s := c.Query("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return repository.Filter{}, domain.ErrInvalidInput
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	return f, nil
}
