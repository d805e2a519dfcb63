package services

import (
	"fmt"
	"log/slog"

	"bankteller/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// SeededAccount reports one demo account's login credentials. Seeding is a
// development convenience; credentials go to the log so a developer can log
// straight in.
type SeededAccount struct {
	CustomerNumber string
	Name           string
	PIN            string
	Kind           string
	Balance        decimal.Decimal
}

// DemoDataService populates the directory with generated accounts
type DemoDataService struct {
	ledgerService LedgerServiceInterface
	logger        *slog.Logger
}

// NewDemoDataService creates a new demo data service
func NewDemoDataService(ledgerService LedgerServiceInterface, logger *slog.Logger) DemoDataServiceInterface {
	return &DemoDataService{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// SeedAccounts opens count demo accounts with generated names, PINs, and
// opening balances
func (s *DemoDataService) SeedAccounts(count int) ([]SeededAccount, error) {
	faker := gofakeit.New(0)
	seeded := make([]SeededAccount, 0, count)

	for i := 0; i < count; i++ {
		// Generated surnames can carry apostrophes, which the directory
		// rejects; redraw until the name passes.
		name := fmt.Sprintf("%s %s", faker.FirstName(), faker.LastName())
		for !models.IsValidCustomerName(name) {
			name = fmt.Sprintf("%s %s", faker.FirstName(), faker.LastName())
		}
		pin := faker.DigitN(4)
		kind := faker.RandomString([]string{"savings", "checking"})
		balance := decimal.NewFromFloat(faker.Float64Range(100, 50000)).Round(2)

		account, err := s.ledgerService.OpenAccount(name, pin, kind, balance, "127.0.0.1", "demo-seeder")
		if err != nil {
			return seeded, fmt.Errorf("failed to seed account %d: %w", i+1, err)
		}

		entry := SeededAccount{
			CustomerNumber: account.Customer.CustomerNumber,
			Name:           name,
			PIN:            pin,
			Kind:           kind,
			Balance:        balance,
		}
		seeded = append(seeded, entry)

		s.logger.Info("seeded demo account",
			"customer_number", entry.CustomerNumber,
			"name", entry.Name,
			"pin", entry.PIN,
			"kind", entry.Kind,
			"balance", entry.Balance.StringFixed(2))
	}

	return seeded, nil
}
