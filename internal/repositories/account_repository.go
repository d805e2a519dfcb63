package repositories

import (
	"errors"
	"fmt"

	"bankteller/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{db: db}
}

// lockForUpdate applies row locking on backends that support it. SQLite
// serializes writers on its own and rejects the FOR UPDATE clause.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateWithCustomer registers a customer and their account together with the
// opening ledger entry, all in one transaction. A customer number collision
// surfaces as ErrCustomerNumberTaken so the caller can regenerate and retry.
func (r *accountRepository) CreateWithCustomer(customer *models.Customer, account *models.Account, initialEntry *models.LedgerEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCustomerNumberTaken
			}
			return fmt.Errorf("failed to create customer: %w", err)
		}

		account.CustomerID = customer.ID
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		if initialEntry != nil {
			initialEntry.AccountID = account.ID
			initialEntry.BalanceAfter = account.Balance
			if err := tx.Create(initialEntry).Error; err != nil {
				return fmt.Errorf("failed to create opening ledger entry: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an account by its ID with the owning customer preloaded
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Preload("Customer").First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	return &account, nil
}

// GetByCustomerNumber retrieves an account through its customer's number
func (r *accountRepository) GetByCustomerNumber(number string) (*models.Account, error) {
	var customer models.Customer
	if err := r.db.Preload("Account").First(&customer, "customer_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get customer by number: %w", err)
	}
	if customer.Account == nil {
		return nil, ErrAccountNotFound
	}
	account := customer.Account
	account.Customer = customer
	return account, nil
}

// CustomerNumberExists checks whether a customer number is already registered
func (r *accountRepository) CustomerNumberExists(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).
		Where("customer_number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer number uniqueness: %w", err)
	}
	return count > 0, nil
}

// GenerateUniqueCustomerNumber generates a customer number not yet in the
// directory, retrying on the rare collision
func (r *accountRepository) GenerateUniqueCustomerNumber() (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		number, err := models.GenerateCustomerNumber()
		if err != nil {
			return "", err
		}

		exists, err := r.CustomerNumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique customer number after %d attempts", maxAttempts)
}

// Deposit credits an account and appends the matching ledger entry in one
// transaction. The returned entry carries the post-deposit balance.
func (r *accountRepository) Deposit(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := lockForUpdate(tx).First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		if err := account.Credit(amount); err != nil {
			return err
		}

		if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to credit account: %w", err)
		}

		entry = &models.LedgerEntry{
			AccountID:    accountID,
			Direction:    models.EntryDirectionCredit,
			Amount:       amount,
			BalanceAfter: account.Balance,
			Description:  description,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create deposit ledger entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Withdraw debits an account and appends the matching ledger entry in one
// transaction. A balance shortfall surfaces as ErrInsufficientFunds and
// leaves both the balance and the history untouched.
func (r *accountRepository) Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := lockForUpdate(tx).First(&account, "id = ?", accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		if err := account.Debit(amount); err != nil {
			if errors.Is(err, models.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			return err
		}

		if err := tx.Model(&account).Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}

		entry = &models.LedgerEntry{
			AccountID:    accountID,
			Direction:    models.EntryDirectionDebit,
			Amount:       amount,
			BalanceAfter: account.Balance,
			Description:  description,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create withdrawal ledger entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ExecuteAtomicTransfer moves funds between two accounts in one database
// transaction: debit plus its ledger entry, then credit plus its ledger
// entry. Any failure rolls the whole movement back. Accounts are locked in a
// fixed order by ID so concurrent opposing transfers cannot deadlock.
func (r *accountRepository) ExecuteAtomicTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, fromDescription, toDescription string) (debitEntryID, creditEntryID uuid.UUID, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		first, second := fromAccountID, toAccountID
		if second.String() < first.String() {
			first, second = second, first
		}

		accounts := make(map[uuid.UUID]*models.Account, 2)
		for _, id := range []uuid.UUID{first, second} {
			var account models.Account
			if err := lockForUpdate(tx).First(&account, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAccountNotFound
				}
				return fmt.Errorf("failed to lock account: %w", err)
			}
			accounts[id] = &account
		}

		fromAcct := accounts[fromAccountID]
		toAcct := accounts[toAccountID]

		if fromAcct.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		newFromBalance := fromAcct.Balance.Sub(amount)
		if err := tx.Model(fromAcct).Update("balance", newFromBalance).Error; err != nil {
			return fmt.Errorf("failed to debit source account: %w", err)
		}

		debitEntry := &models.LedgerEntry{
			AccountID:    fromAccountID,
			Direction:    models.EntryDirectionDebit,
			Amount:       amount,
			BalanceAfter: newFromBalance,
			Description:  fromDescription,
		}
		if err := tx.Create(debitEntry).Error; err != nil {
			return fmt.Errorf("failed to create debit ledger entry: %w", err)
		}
		debitEntryID = debitEntry.ID

		newToBalance := toAcct.Balance.Add(amount)
		if err := tx.Model(toAcct).Update("balance", newToBalance).Error; err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}

		creditEntry := &models.LedgerEntry{
			AccountID:    toAccountID,
			Direction:    models.EntryDirectionCredit,
			Amount:       amount,
			BalanceAfter: newToBalance,
			Description:  toDescription,
		}
		if err := tx.Create(creditEntry).Error; err != nil {
			return fmt.Errorf("failed to create credit ledger entry: %w", err)
		}
		creditEntryID = creditEntry.ID

		return nil
	})

	return debitEntryID, creditEntryID, err
}

// CountAccounts returns the number of registered accounts
func (r *accountRepository) CountAccounts() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}
