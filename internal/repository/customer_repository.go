package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// CustomerRepo provides access to the Customer table.  Customer ids are
// chosen by the client, so inserts never rely on LastInsertId.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `id, name, email, phone, address`

func scanCustomer(row interface{ Scan(...any) error }) (model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, ErrCustomerNotFound
		}
		return model.Customer{}, err
	}
	return c, nil
}

// GetByID fetches a customer outside of any transaction.
func (r *CustomerRepo) GetByID(ctx context.Context, id model.ID) (model.Customer, error) {
	return scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM Customer WHERE id = ?`, id))
}

// GetByIDTx fetches a customer inside tx.
func (r *CustomerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id model.ID) (model.Customer, error) {
	return scanCustomer(tx.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM Customer WHERE id = ?`, id))
}

// LockTx takes an exclusive row lock on the customer until tx ends.  It
// returns ErrCustomerNotFound when the row does not exist.
func (r *CustomerRepo) LockTx(ctx context.Context, tx *sql.Tx, id model.ID) error {
	var locked model.ID
	err := tx.QueryRowContext(ctx, `SELECT id FROM Customer WHERE id = ? FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCustomerNotFound
	}
	return err
}

// CreateTx inserts c.  A primary key collision is reported as
// membership.ErrDuplicateID.
func (r *CustomerRepo) CreateTx(ctx context.Context, tx *sql.Tx, c model.Customer) error {
	const q = `INSERT INTO Customer (id, name, email, phone, address) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, c.ID, c.Name, c.Email, c.Phone, c.Address); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("customer %s: %w", c.ID, membership.ErrDuplicateID)
		}
		return err
	}
	return nil
}

// UpdateTx overwrites the profile columns of c.  MySQL reports zero
// affected rows when nothing changed, so absence is not inferred here;
// callers check existence first.
func (r *CustomerRepo) UpdateTx(ctx context.Context, tx *sql.Tx, c model.Customer) error {
	const q = `UPDATE Customer SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, c.Name, c.Email, c.Phone, c.Address, c.ID)
	return err
}
