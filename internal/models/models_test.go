package models

import (
	"testing"
	"time"
)

func int32p(v int32) *int32 { return &v }

func strp(v string) *string { return &v }

func TestUpdateNodeApply(t *testing.T) {
	node := &Node{ID: 1, Address: "http://old:8010", Token: "old-token", Status: 0}

	patch := &UpdateNode{Address: strp("http://new:8010"), Status: int32p(2)}
	patch.Apply(node)

	if node.Address != "http://new:8010" {
		t.Errorf("Address = %q", node.Address)
	}
	if node.Token != "old-token" {
		t.Errorf("Token changed to %q, nil patch field must not touch it", node.Token)
	}
	if node.Status != 2 {
		t.Errorf("Status = %d", node.Status)
	}
}

func TestUpdateServiceApply(t *testing.T) {
	svc := &Service{ID: 1, MaxLogins: 3, Price: 100, Available: true}

	available := false
	patch := &UpdateService{Price: int32p(150), Available: &available}
	patch.Apply(svc)

	if svc.MaxLogins != 3 {
		t.Errorf("MaxLogins = %d, want untouched 3", svc.MaxLogins)
	}
	if svc.Price != 150 {
		t.Errorf("Price = %d", svc.Price)
	}
	if svc.Available {
		t.Error("Available still true")
	}
}

func TestNewUnverifiedSell(t *testing.T) {
	refID := int64(7)
	user := &User{ID: 42, RefID: &refID}
	sell := NewUnverifiedSell(user, &NewSell{UserID: 42, ServiceID: 1, NodeID: 2})

	if sell.Status != SellStatusUnverified {
		t.Errorf("Status = %d, want unverified", sell.Status)
	}
	if sell.UserID != 42 || sell.ServiceID != 1 || sell.NodeID != 2 {
		t.Errorf("sell = %+v", sell)
	}
	if sell.RefID == nil || *sell.RefID != 7 {
		t.Errorf("RefID = %v", sell.RefID)
	}
}

func TestNewUnverifiedSellIgnoresRequestRef(t *testing.T) {
	forged := int64(999)
	user := &User{ID: 42}
	sell := NewUnverifiedSell(user, &NewSell{UserID: 42, RefID: &forged, ServiceID: 1, NodeID: 2})

	if sell.RefID != nil {
		t.Errorf("RefID = %v, want nil from the customer record", *sell.RefID)
	}
}

func TestVerifySellPatch(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sshuser := &SSHUser{
		Username:     "sshmgmt3x001",
		PasswordHash: "$6$hash",
		Shell:        "/bin/rbash",
		Usergroup:    "grp3",
		ExpDate:      "2026-08-31",
	}

	patch := VerifySellPatch(sshuser, now)

	sell := &Sell{ID: 1, UserID: 42, ServiceID: 1, NodeID: 2, Status: SellStatusUnverified}
	patch.Apply(sell)

	if sell.Status != SellStatusVerified {
		t.Errorf("Status = %d, want verified", sell.Status)
	}
	if sell.FirstbuyDate == nil || !sell.FirstbuyDate.Equal(now) {
		t.Errorf("FirstbuyDate = %v, want %v", sell.FirstbuyDate, now)
	}
	wantInvoice := now.Add(30 * 24 * time.Hour)
	if sell.InvoiceDate == nil || !sell.InvoiceDate.Equal(wantInvoice) {
		t.Errorf("InvoiceDate = %v, want %v", sell.InvoiceDate, wantInvoice)
	}
	if sell.Username == nil || *sell.Username != "sshmgmt3x001" {
		t.Errorf("Username = %v", sell.Username)
	}
	if sell.PasswordHash == nil || *sell.PasswordHash != "$6$hash" {
		t.Errorf("PasswordHash = %v", sell.PasswordHash)
	}
	// A verify never stores the plaintext password.
	if sell.Password != nil {
		t.Errorf("Password = %v, want nil", sell.Password)
	}
	if sell.UserID != 42 || sell.ServiceID != 1 || sell.NodeID != 2 {
		t.Errorf("identity fields changed: %+v", sell)
	}
}
