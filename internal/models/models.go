package models

import "time"

// Sell status wire values. Kept numeric for compatibility with existing rows.
const (
	SellStatusVerified   int32 = 0
	SellStatusUnverified int32 = 1
)

// Node is a fleet member running the node agent.
type Node struct {
	ID      int32  `json:"id"`
	Address string `json:"address"`
	Token   string `json:"token"`
	Status  int32  `json:"status"`
}

// NewNode carries the fields for registering a node.
type NewNode struct {
	Address string `json:"address" binding:"required"`
	Token   string `json:"token" binding:"required"`
	Status  int32  `json:"status"`
}

// UpdateNode is a patch; nil fields leave the loaded entity untouched.
type UpdateNode struct {
	Address *string `json:"address"`
	Token   *string `json:"token"`
	Status  *int32  `json:"status"`
}

// Apply merges the patch into an existing node.
func (u *UpdateNode) Apply(n *Node) {
	if u.Address != nil {
		n.Address = *u.Address
	}
	if u.Token != nil {
		n.Token = *u.Token
	}
	if u.Status != nil {
		n.Status = *u.Status
	}
}

// Service is a resellable tier. MaxLogins doubles as the capacity class used
// in derived usernames and groups.
type Service struct {
	ID         int32  `json:"id"`
	MaxLogins  int32  `json:"max_logins"`
	MaxTraffic *int32 `json:"max_traffic"`
	Price      int32  `json:"price"`
	Available  bool   `json:"available"`
}

type NewService struct {
	MaxLogins  int32  `json:"max_logins" binding:"required"`
	MaxTraffic *int32 `json:"max_traffic"`
	Price      int32  `json:"price"`
	Available  *bool  `json:"available"`
}

type UpdateService struct {
	MaxLogins  *int32 `json:"max_logins"`
	MaxTraffic *int32 `json:"max_traffic"`
	Price      *int32 `json:"price"`
	Available  *bool  `json:"available"`
}

func (u *UpdateService) Apply(s *Service) {
	if u.MaxLogins != nil {
		s.MaxLogins = *u.MaxLogins
	}
	if u.MaxTraffic != nil {
		s.MaxTraffic = u.MaxTraffic
	}
	if u.Price != nil {
		s.Price = *u.Price
	}
	if u.Available != nil {
		s.Available = *u.Available
	}
}

// User is a customer record. RefID points at the referring customer.
type User struct {
	ID           int64     `json:"id"`
	RefID        *int64    `json:"ref_id"`
	RegisterDate time.Time `json:"register_date"`
}

type NewUser struct {
	ID    int64  `json:"id" binding:"required"`
	RefID *int64 `json:"ref_id"`
}

// Sell links a customer, a service tier and a target node. It starts
// Unverified and is flipped to Verified exactly once by the orchestrator.
type Sell struct {
	ID           int32      `json:"id"`
	UserID       int64      `json:"user_id"`
	RefID        *int64     `json:"ref_id"`
	ServiceID    int32      `json:"service_id"`
	NodeID       int32      `json:"node_id"`
	FirstbuyDate *time.Time `json:"firstbuy_date"`
	InvoiceDate  *time.Time `json:"invoice_date"`
	Username     *string    `json:"username"`
	Password     *string    `json:"password"`
	PasswordHash *string    `json:"password_hash"`
	Status       int32      `json:"status"`
}

type NewSell struct {
	UserID    int64  `json:"user_id" binding:"required"`
	RefID     *int64 `json:"ref_id"`
	ServiceID int32  `json:"service_id" binding:"required"`
	NodeID    int32  `json:"node_id" binding:"required"`
	Status    int32  `json:"status"`
}

// NewUnverifiedSell builds the initial sell record for a purchase. The
// referrer is always copied from the customer record, never taken from the
// request.
func NewUnverifiedSell(user *User, req *NewSell) *NewSell {
	return &NewSell{
		UserID:    user.ID,
		RefID:     user.RefID,
		ServiceID: req.ServiceID,
		NodeID:    req.NodeID,
		Status:    SellStatusUnverified,
	}
}

type UpdateSell struct {
	UserID       *int64     `json:"user_id"`
	RefID        *int64     `json:"ref_id"`
	ServiceID    *int32     `json:"service_id"`
	NodeID       *int32     `json:"node_id"`
	FirstbuyDate *time.Time `json:"firstbuy_date"`
	InvoiceDate  *time.Time `json:"invoice_date"`
	Username     *string    `json:"username"`
	Password     *string    `json:"password"`
	PasswordHash *string    `json:"password_hash"`
	Status       *int32     `json:"status"`
}

func (u *UpdateSell) Apply(s *Sell) {
	if u.UserID != nil {
		s.UserID = *u.UserID
	}
	if u.RefID != nil {
		s.RefID = u.RefID
	}
	if u.ServiceID != nil {
		s.ServiceID = *u.ServiceID
	}
	if u.NodeID != nil {
		s.NodeID = *u.NodeID
	}
	if u.FirstbuyDate != nil {
		s.FirstbuyDate = u.FirstbuyDate
	}
	if u.InvoiceDate != nil {
		s.InvoiceDate = u.InvoiceDate
	}
	if u.Username != nil {
		s.Username = u.Username
	}
	if u.Password != nil {
		s.Password = u.Password
	}
	if u.PasswordHash != nil {
		s.PasswordHash = u.PasswordHash
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
}

// VerifySellPatch builds the patch applied after a successful node-side
// provisioning: invoice a month out, credentials stored, status Verified.
func VerifySellPatch(sshuser *SSHUser, now time.Time) *UpdateSell {
	invoice := now.Add(30 * 24 * time.Hour)
	status := SellStatusVerified

	return &UpdateSell{
		FirstbuyDate: &now,
		InvoiceDate:  &invoice,
		Username:     &sshuser.Username,
		PasswordHash: &sshuser.PasswordHash,
		Status:       &status,
	}
}

// Login is an operator account on the control plane.
type Login struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	RegisterDate time.Time `json:"register_date"`
}

type NewLogin struct {
	Username     string
	PasswordHash string
	Admin        bool
}
