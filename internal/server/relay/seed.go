package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
)

var patients = []string{"Ana Souza", "Bruno Lima", "Carla Mendes", "Diego Rocha", "Elisa Prado"}

// SeedDemo fills an empty store with one company and a delivery log where
// every third message failed. It returns the company id.
func (s *Store) SeedDemo(ctx context.Context, messages int) (string, error) {
	existing, err := s.Companies(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	c, err := s.CreateCompany(ctx, models.CompanyInput{Name: "Clinica Demo", CNPJ: "12345678000190"})
	if err != nil {
		return "", err
	}

	base := s.now().Add(-time.Duration(messages) * time.Hour)
	for i := 0; i < messages; i++ {
		name := patients[i%len(patients)]
		s.AppendLog(ctx, models.MessageLog{
			CompanyID:   c.ID,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			IsSent:      i%3 != 2,
			Message:     fmt.Sprintf("Olá %s, sua consulta está confirmada.", name),
			PatientID:   fmt.Sprintf("p-%03d", i+1),
			PatientName: name,
			PhoneNumber: fmt.Sprintf("55119%08d", 10000000+i),
		})
	}
	return c.ID, nil
}
