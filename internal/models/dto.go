package models

// Wire types shared between the control plane and the node agent. The agent
// serializes results as {"Ok": <value>} or {"Err": <error>}; the control
// plane uses the same envelope toward its own callers.

// SSHUser is the OS-level account as reported by the node agent.
type SSHUser struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Shell        string `json:"shell"`
	Usergroup    string `json:"usergroup"`
	ExpDate      string `json:"exp_date"`
}

// InputSSHUser is the useradd request body. Shell is optional; the agent
// falls back to its configured default.
type InputSSHUser struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	ExpDate  string  `json:"exp_date" binding:"required"`
	Group    string  `json:"group" binding:"required"`
	Shell    *string `json:"shell"`
}

// AutoSSHUser is the auto_useradd request body: the agent synthesizes
// username = prefix + (users_count + 1).
type AutoSSHUser struct {
	Prefix     string `json:"prefix" binding:"required"`
	UsersCount uint64 `json:"users_count"`
	ExpDate    string `json:"exp_date" binding:"required"`
	Group      string `json:"group" binding:"required"`
}

// UserLookupParams selects accounts by name, prefix or group.
type UserLookupParams struct {
	Username *string `json:"username"`
	Prefix   *string `json:"prefix"`
	Group    *string `json:"group"`
}

type UserExpDate struct {
	Username string `json:"username" binding:"required"`
	ExpDate  string `json:"exp_date" binding:"required"`
}

type UserPasswd struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserGrp struct {
	Username string `json:"username" binding:"required"`
	Group    string `json:"group" binding:"required"`
}

type OnlyUser struct {
	Username string `json:"username" binding:"required"`
}

// UserRawCreds carries a plaintext password alongside its storage hash; it
// only ever travels back to the operator, never into the OS account db.
type UserRawCreds struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	PasswordHash string `json:"password_hash"`
}

type UserExp struct {
	Username string `json:"username"`
	ExpDate  string `json:"exp_date"`
}

type UserStatus struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

type ChExpMsg struct {
	Username string `json:"username"`
	ExpDate  string `json:"exp_date"`
	Message  string `json:"message"`
}

type ChGrpMsg struct {
	Username string `json:"username"`
	Group    string `json:"group"`
	Message  string `json:"message"`
}

// AccountInfo parametrizes verify_sell; Days defaults to 30 when nil.
type AccountInfo struct {
	Days *int64 `json:"days"`
}

// LoginInfo is the register/login request body. AdminKey is only consulted
// by register.
type LoginInfo struct {
	AdminKey *string `json:"admin_key"`
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
}
