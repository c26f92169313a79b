// Package auth validates logins against the two static accounts and,
// for everyone else, against the uploaded dataset: a student's password
// is the local part of their email. No lockout, no rate limiting.
package auth

import (
	"strings"

	"skillboard/domain/columns"
	"skillboard/domain/tabular"
)

// Role determines which dashboard a session sees.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleTeacher Role = "Teacher"
	RoleStudent Role = "Student"
)

// Account is a fixed credential record defined at startup.
type Account struct {
	Email       string
	Password    string
	Role        Role
	DisplayName string
}

// Static accounts, plaintext. Single-tenant deployment only.
var (
	AdminAccount = Account{
		Email:       "admin@college.edu",
		Password:    "admin123",
		Role:        RoleAdmin,
		DisplayName: "Admin User",
	}
	TeacherAccount = Account{
		Email:       "teacher@college.edu",
		Password:    "teacher123",
		Role:        RoleTeacher,
		DisplayName: "Teacher User",
	}
)

// Result carries the resolved identity of a successful login.
type Result struct {
	Email       string
	Role        Role
	DisplayName string
}

// EmailPrefix extracts the lowercased local part of an email address.
func EmailPrefix(email string) string {
	return strings.ToLower(strings.SplitN(email, "@", 2)[0])
}

// Authenticate checks credentials in fixed order: admin, teacher, then
// dataset rows. It is pure; ds may be nil when no dataset is loaded.
// Emails compare lowercased and trimmed. Admin/teacher passwords keep
// their casing; the student email-prefix check is case-insensitive.
func Authenticate(email, password string, ds *tabular.Dataset) (Result, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	for _, account := range []Account{AdminAccount, TeacherAccount} {
		if email == account.Email && password == account.Password {
			return Result{Email: email, Role: account.Role, DisplayName: account.DisplayName}, true
		}
	}

	if ds == nil {
		return Result{}, false
	}

	emailCol, ok := columns.DetectRole(ds, columns.RoleEmail)
	if !ok {
		return Result{}, false
	}

	for i, cell := range ds.ColumnValues(emailCol) {
		if cell.IsMissing() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cell.Raw)) != email {
			continue
		}
		expected := EmailPrefix(cell.Raw)
		if strings.ToLower(password) != expected {
			return Result{}, false
		}
		displayName := "Student"
		if nameCol, ok := columns.DetectRole(ds, columns.RoleName); ok {
			if nameCell, ok := ds.Cell(i, nameCol); ok && !nameCell.IsMissing() {
				displayName = nameCell.Raw
			}
		}
		return Result{Email: email, Role: RoleStudent, DisplayName: displayName}, true
	}

	return Result{}, false
}
