package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/fanclub-membership/internal/membership"
)

func profile() membership.Profile {
	return membership.Profile{Name: "Lee", Email: "lee@example.com", Phone: "010-9999", Address: "Busan"}
}

func TestHasControlChar(t *testing.T) {
	tests := map[string]bool{
		"plain":           false,
		"\uc548\ub155 ok": false,
		"tab\there":       true,
		"new\nline":       true,
		"nul\x00":         true,
		"del\x7f":         true,
		"c1 \u0085":       true,
		"zero\u200bwidth": false,
	}
	for in, want := range tests {
		if got := membership.HasControlChar(in); got != want {
			t.Errorf("HasControlChar(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAddCustomer(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		mutate  func(*membership.Profile)
		wantErr error
	}{
		{"ok", "11", nil, nil},
		{"invalid id", "x", nil, membership.ErrInvalidID},
		{"duplicate id", "10", nil, membership.ErrDuplicateID},
		{"name control", "11", func(p *membership.Profile) { p.Name = "Le\x07e" }, membership.ErrInvalidField},
		{"email control", "11", func(p *membership.Profile) { p.Email = "a\n@b" }, membership.ErrInvalidField},
		{"address control", "11", func(p *membership.Profile) { p.Address = "Bu\tsan" }, membership.ErrInvalidField},
		{"phone not checked", "11", func(p *membership.Profile) { p.Phone = "010\t1" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			p := profile()
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			c, err := membership.NewService(store).AddCustomer(context.Background(), tt.id, p)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(store.customers) != 1 {
					t.Error("customer stored on failure")
				}
				return
			}
			if store.customers[c.ID] != c {
				t.Errorf("stored %+v, want %+v", store.customers[c.ID], c)
			}
		})
	}
}

func TestAddCustomer_FieldNamedInError(t *testing.T) {
	p := profile()
	p.Email = "x\x1b"
	_, err := membership.NewService(newMemStore()).AddCustomer(context.Background(), "11", p)
	if err == nil || err.Error() != "invalid field: email contains control characters" {
		t.Fatalf("err = %v", err)
	}
}

func TestEditCustomer(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := membership.NewService(store)

	updated, err := svc.EditCustomer(ctx, 10, profile())
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if store.customers[10] != updated || updated.Name != "Lee" {
		t.Errorf("stored %+v", store.customers[10])
	}

	if _, err := svc.EditCustomer(ctx, 99, profile()); !errors.Is(err, membership.ErrNotFound) {
		t.Errorf("unknown customer err = %v, want ErrNotFound", err)
	}

	bad := profile()
	bad.Address = "\x01"
	if _, err := svc.EditCustomer(ctx, 10, bad); !errors.Is(err, membership.ErrInvalidField) {
		t.Errorf("control char err = %v, want ErrInvalidField", err)
	}
	if store.customers[10].Address != "Busan" {
		t.Error("rejected edit was applied")
	}
}

func TestLogin(t *testing.T) {
	svc := membership.NewService(newMemStore())
	tests := []struct {
		name    string
		id      string
		phone   string
		wantErr error
	}{
		{"match", "10", "010-1234", nil},
		{"wrong phone", "10", "010-0000", membership.ErrInvalidCredentials},
		{"unknown id", "11", "010-1234", membership.ErrInvalidCredentials},
		{"garbage id", "ten", "010-1234", membership.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := svc.Login(context.Background(), tt.id, tt.phone)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && c.ID != 10 {
				t.Errorf("customer = %+v", c)
			}
		})
	}
}
