package repositories

import (
	"testing"

	"bankteller/internal/database"
	"bankteller/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AccountRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	repo AccountRepositoryInterface
}

func (s *AccountRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
}

func (s *AccountRepositoryTestSuite) createAccount(number, name string, balance int64) *models.Account {
	customer := database.CreateTestCustomer(s.T(), s.db, number, name)
	return database.CreateTestAccount(s.T(), s.db, customer, models.AccountKindSavings, decimal.NewFromInt(balance))
}

func (s *AccountRepositoryTestSuite) TestCreateWithCustomer() {
	customer := &models.Customer{
		CustomerNumber: "123456789",
		Name:           "Alice Smith",
		PINHash:        "hash",
	}
	account := &models.Account{
		Kind:    models.AccountKindSavings,
		Balance: decimal.NewFromInt(500),
	}
	entry := &models.LedgerEntry{
		Direction:   models.EntryDirectionCredit,
		Amount:      decimal.NewFromInt(500),
		Description: models.InitialDepositDescription(decimal.NewFromInt(500)),
	}

	s.Require().NoError(s.repo.CreateWithCustomer(customer, account, entry))

	s.Equal(customer.ID, account.CustomerID)
	s.Equal(account.ID, entry.AccountID)
	s.True(entry.BalanceAfter.Equal(decimal.NewFromInt(500)))

	loaded, err := s.repo.GetByID(account.ID)
	s.Require().NoError(err)
	s.Equal("Alice Smith", loaded.Customer.Name)
	s.True(loaded.InterestRate.Equal(decimal.NewFromFloat(5.0)))
}

func (s *AccountRepositoryTestSuite) TestCreateWithCustomer_DuplicateNumber() {
	s.createAccount("123456789", "Alice Smith", 500)

	customer := &models.Customer{
		CustomerNumber: "123456789",
		Name:           "Bob Jones",
		PINHash:        "hash",
	}
	account := &models.Account{
		Kind:    models.AccountKindChecking,
		Balance: decimal.NewFromInt(200),
	}

	err := s.repo.CreateWithCustomer(customer, account, nil)
	s.ErrorIs(err, ErrCustomerNumberTaken)
}

func (s *AccountRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositoryTestSuite) TestGetByCustomerNumber() {
	account := s.createAccount("123456789", "Alice Smith", 500)

	loaded, err := s.repo.GetByCustomerNumber("123456789")
	s.Require().NoError(err)
	s.Equal(account.ID, loaded.ID)
	s.Equal("Alice Smith", loaded.Customer.Name)
	s.Equal("123456789", loaded.Customer.CustomerNumber)
}

func (s *AccountRepositoryTestSuite) TestGetByCustomerNumber_NotFound() {
	_, err := s.repo.GetByCustomerNumber("000000001")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositoryTestSuite) TestGetByCustomerNumber_CustomerWithoutAccount() {
	database.CreateTestCustomer(s.T(), s.db, "123456789", "Alice Smith")

	_, err := s.repo.GetByCustomerNumber("123456789")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositoryTestSuite) TestCustomerNumberExists() {
	s.createAccount("123456789", "Alice Smith", 500)

	exists, err := s.repo.CustomerNumberExists("123456789")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.CustomerNumberExists("000000001")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *AccountRepositoryTestSuite) TestGenerateUniqueCustomerNumber() {
	number, err := s.repo.GenerateUniqueCustomerNumber()
	s.Require().NoError(err)
	s.True(models.IsValidCustomerNumber(number))

	exists, err := s.repo.CustomerNumberExists(number)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *AccountRepositoryTestSuite) TestDeposit() {
	account := s.createAccount("123456789", "Alice Smith", 500)

	entry, err := s.repo.Deposit(account.ID, decimal.NewFromInt(250), "Deposited 250.00")
	s.Require().NoError(err)
	s.Equal(models.EntryDirectionCredit, entry.Direction)
	s.True(entry.BalanceAfter.Equal(decimal.NewFromInt(750)))
	s.NotEmpty(entry.Reference)

	current, err := s.repo.GetByID(account.ID)
	s.Require().NoError(err)
	s.True(current.Balance.Equal(decimal.NewFromInt(750)))
}

func (s *AccountRepositoryTestSuite) TestDeposit_UnknownAccount() {
	_, err := s.repo.Deposit(uuid.New(), decimal.NewFromInt(100), "Deposited 100.00")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositoryTestSuite) TestWithdraw() {
	account := s.createAccount("123456789", "Alice Smith", 500)

	entry, err := s.repo.Withdraw(account.ID, decimal.NewFromInt(200), "Withdrew 200.00")
	s.Require().NoError(err)
	s.Equal(models.EntryDirectionDebit, entry.Direction)
	s.True(entry.BalanceAfter.Equal(decimal.NewFromInt(300)))
}

func (s *AccountRepositoryTestSuite) TestWithdraw_InsufficientFunds() {
	account := s.createAccount("123456789", "Alice Smith", 500)

	_, err := s.repo.Withdraw(account.ID, decimal.NewFromInt(501), "Withdrew 501.00")
	s.ErrorIs(err, ErrInsufficientFunds)

	// The rejected withdrawal must not leave a partial write behind
	current, err := s.repo.GetByID(account.ID)
	s.Require().NoError(err)
	s.True(current.Balance.Equal(decimal.NewFromInt(500)))

	var count int64
	s.Require().NoError(s.db.Model(&models.LedgerEntry{}).
		Where("account_id = ?", account.ID).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *AccountRepositoryTestSuite) TestExecuteAtomicTransfer() {
	from := s.createAccount("123456789", "Alice Smith", 1000)
	to := s.createAccount("987654321", "Bob Jones", 200)

	debitEntryID, creditEntryID, err := s.repo.ExecuteAtomicTransfer(
		from.ID, to.ID, decimal.NewFromInt(300), "out", "in")
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, debitEntryID)
	s.NotEqual(uuid.Nil, creditEntryID)

	fromCurrent, err := s.repo.GetByID(from.ID)
	s.Require().NoError(err)
	s.True(fromCurrent.Balance.Equal(decimal.NewFromInt(700)))

	toCurrent, err := s.repo.GetByID(to.ID)
	s.Require().NoError(err)
	s.True(toCurrent.Balance.Equal(decimal.NewFromInt(500)))

	var debitEntry models.LedgerEntry
	s.Require().NoError(s.db.First(&debitEntry, "id = ?", debitEntryID).Error)
	s.Equal(models.EntryDirectionDebit, debitEntry.Direction)
	s.Equal("out", debitEntry.Description)

	var creditEntry models.LedgerEntry
	s.Require().NoError(s.db.First(&creditEntry, "id = ?", creditEntryID).Error)
	s.Equal(models.EntryDirectionCredit, creditEntry.Direction)
	s.Equal("in", creditEntry.Description)
}

func (s *AccountRepositoryTestSuite) TestExecuteAtomicTransfer_InsufficientFunds() {
	from := s.createAccount("123456789", "Alice Smith", 100)
	to := s.createAccount("987654321", "Bob Jones", 200)

	_, _, err := s.repo.ExecuteAtomicTransfer(
		from.ID, to.ID, decimal.NewFromInt(150), "out", "in")
	s.ErrorIs(err, ErrInsufficientFunds)

	fromCurrent, err := s.repo.GetByID(from.ID)
	s.Require().NoError(err)
	s.True(fromCurrent.Balance.Equal(decimal.NewFromInt(100)))

	toCurrent, err := s.repo.GetByID(to.ID)
	s.Require().NoError(err)
	s.True(toCurrent.Balance.Equal(decimal.NewFromInt(200)))

	// No stray ledger entries from the rolled back attempt
	var count int64
	s.Require().NoError(s.db.Model(&models.LedgerEntry{}).Count(&count).Error)
	s.Equal(int64(2), count)
}

func (s *AccountRepositoryTestSuite) TestExecuteAtomicTransfer_UnknownAccount() {
	from := s.createAccount("123456789", "Alice Smith", 1000)

	_, _, err := s.repo.ExecuteAtomicTransfer(
		from.ID, uuid.New(), decimal.NewFromInt(100), "out", "in")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositoryTestSuite) TestCreateWithCustomer_BulkRegistration() {
	faker := gofakeit.New(7)

	for i := 0; i < 20; i++ {
		number, err := s.repo.GenerateUniqueCustomerNumber()
		s.Require().NoError(err)

		name := faker.FirstName() + " " + faker.LastName()
		if !models.IsValidCustomerName(name) {
			name = faker.FirstName()
		}

		customer := &models.Customer{
			CustomerNumber: number,
			Name:           name,
			PINHash:        "hash",
		}
		account := &models.Account{
			Kind:    models.AccountKinds()[i%2],
			Balance: decimal.NewFromFloat(faker.Float64Range(100, 50000)).Round(2),
		}

		s.Require().NoError(s.repo.CreateWithCustomer(customer, account, nil))
	}

	count, err := s.repo.CountAccounts()
	s.Require().NoError(err)
	s.Equal(int64(20), count)
}

func (s *AccountRepositoryTestSuite) TestCountAccounts() {
	count, err := s.repo.CountAccounts()
	s.Require().NoError(err)
	s.Equal(int64(0), count)

	s.createAccount("123456789", "Alice Smith", 500)
	s.createAccount("987654321", "Bob Jones", 200)

	count, err = s.repo.CountAccounts()
	s.Require().NoError(err)
	s.Equal(int64(2), count)
}

func TestAccountRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryTestSuite))
}
