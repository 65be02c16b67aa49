package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// Profile holds the editable customer fields.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// HasControlChar reports whether s contains a character of Unicode
// category Cc.
func HasControlChar(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cc, r) {
			return true
		}
	}
	return false
}

// Validate rejects control characters in name, email and address, in that
// order.  Phone is stored as given.
func (p Profile) Validate() error {
	fields := []struct{ name, value string }{
		{"name", p.Name},
		{"email", p.Email},
		{"address", p.Address},
	}
	for _, f := range fields {
		if HasControlChar(f.value) {
			return fmt.Errorf("%w: %s contains control characters", ErrInvalidField, f.name)
		}
	}
	return nil
}

func (p Profile) customer(id model.ID) model.Customer {
	return model.Customer{ID: id, Name: p.Name, Email: p.Email, Phone: p.Phone, Address: p.Address}
}

// AddCustomer registers a customer under a client-chosen id.
func (s *Service) AddCustomer(ctx context.Context, rawID string, p Profile) (model.Customer, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return model.Customer{}, err
	}
	c := p.customer(id)
	err = s.inTx(ctx, "add customer", func(tx Tx) error {
		_, err := tx.CustomerByID(ctx, id)
		switch {
		case err == nil:
			return fmt.Errorf("customer %s: %w", id, ErrDuplicateID)
		case !errors.Is(err, sql.ErrNoRows):
			return storageErr("check customer id", err)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := tx.InsertCustomer(ctx, c); err != nil {
			if errors.Is(err, ErrDuplicateID) {
				return fmt.Errorf("customer %s: %w", id, ErrDuplicateID)
			}
			return storageErr("insert customer", err)
		}
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	s.log.Info().Stringer("customer_id", id).Msg("customer created")
	return c, nil
}

// EditCustomer replaces the profile of an existing customer.
func (s *Service) EditCustomer(ctx context.Context, id model.ID, p Profile) (model.Customer, error) {
	c := p.customer(id)
	err := s.inTx(ctx, "edit customer", func(tx Tx) error {
		if _, err := tx.CustomerByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("customer %s: %w", id, ErrNotFound)
			}
			return storageErr("load customer", err)
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := tx.UpdateCustomer(ctx, c); err != nil {
			return storageErr("update customer", err)
		}
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	s.log.Info().Stringer("customer_id", id).Msg("customer updated")
	return c, nil
}

// Login matches a member id against the stored phone number.  Any
// mismatch, including an unparsable or unknown id, is ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, rawID, phone string) (model.Customer, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return model.Customer{}, ErrInvalidCredentials
	}
	var c model.Customer
	err = s.inTx(ctx, "login", func(tx Tx) error {
		var err error
		c, err = tx.CustomerByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidCredentials
		}
		if err != nil {
			return storageErr("load customer", err)
		}
		if c.Phone != phone {
			return ErrInvalidCredentials
		}
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	return c, nil
}
