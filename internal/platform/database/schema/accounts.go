// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the stored fields of every record, shared by the
// PostgreSQL tables and the Weaviate classes so both backends agree.
package schema

// AccountTable represents the accounts table and the User class.
type AccountTable struct {
	Table     string
	Class     string
	Username  string
	Email     string
	Password  string
	CreatedAt string
}

// Account is the schema definition for accounts.
var Account = AccountTable{
	Table:     "accounts",
	Class:     "User",
	Username:  "username",
	Email:     "email",
	Password:  "password_hash",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t AccountTable) Columns() []string {
	return []string{t.Username, t.Email, t.Password, t.CreatedAt}
}
