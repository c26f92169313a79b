package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillboard/domain/tabular"
)

func mustDataset(t *testing.T, csv string) *tabular.Dataset {
	t.Helper()
	ds, err := tabular.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	return ds
}

func TestAuthenticate_StaticAccounts(t *testing.T) {
	ds := mustDataset(t, "Email\nsomeone@x.com\n")

	for _, withDataset := range []*tabular.Dataset{nil, ds} {
		result, ok := Authenticate("admin@college.edu", "admin123", withDataset)
		require.True(t, ok)
		assert.Equal(t, RoleAdmin, result.Role)
		assert.Equal(t, "Admin User", result.DisplayName)

		result, ok = Authenticate("teacher@college.edu", "teacher123", withDataset)
		require.True(t, ok)
		assert.Equal(t, RoleTeacher, result.Role)
		assert.Equal(t, "Teacher User", result.DisplayName)
	}
}

func TestAuthenticate_EmailNormalization(t *testing.T) {
	_, ok := Authenticate("  ADMIN@College.EDU  ", "admin123", nil)
	assert.True(t, ok)

	// Static passwords keep their casing.
	_, ok = Authenticate("admin@college.edu", "ADMIN123", nil)
	assert.False(t, ok)
}

func TestAuthenticate_StudentEmailPrefix(t *testing.T) {
	ds := mustDataset(t,
		"Name,Email,PreTestScore,PostTestScore\n"+
			"Alice,alice@x.com,40,95\n"+
			"Bob,Bob.Smith@x.com,50,60\n")

	result, ok := Authenticate("alice@x.com", "alice", ds)
	require.True(t, ok)
	assert.Equal(t, RoleStudent, result.Role)
	assert.Equal(t, "Alice", result.DisplayName)

	// Password comparison is case-insensitive.
	result, ok = Authenticate("bob.smith@x.com", "BOB.SMITH", ds)
	require.True(t, ok)
	assert.Equal(t, RoleStudent, result.Role)
	assert.Equal(t, "Bob", result.DisplayName)
}

func TestAuthenticate_StudentWrongPassword(t *testing.T) {
	ds := mustDataset(t, "Name,Email\nAlice,alice@x.com\n")

	_, ok := Authenticate("alice@x.com", "wrong", ds)
	assert.False(t, ok)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	ds := mustDataset(t, "Name,Email\nAlice,alice@x.com\n")

	_, ok := Authenticate("nobody@x.com", "nobody", ds)
	assert.False(t, ok)
}

func TestAuthenticate_NoDatasetNoStudents(t *testing.T) {
	_, ok := Authenticate("alice@x.com", "alice", nil)
	assert.False(t, ok)
}

func TestAuthenticate_NoEmailRole(t *testing.T) {
	ds := mustDataset(t, "Name,Contact\nAlice,alice@x.com\n")

	_, ok := Authenticate("alice@x.com", "alice", ds)
	assert.False(t, ok)
}

func TestAuthenticate_NameRoleUnresolvedDefaultsToStudent(t *testing.T) {
	ds := mustDataset(t, "Email\nalice@x.com\n")

	result, ok := Authenticate("alice@x.com", "alice", ds)
	require.True(t, ok)
	assert.Equal(t, "Student", result.DisplayName)
}

func TestAuthenticate_IsPure(t *testing.T) {
	ds := mustDataset(t, "Name,Email\nAlice,alice@x.com\n")

	first, okFirst := Authenticate("alice@x.com", "alice", ds)
	second, okSecond := Authenticate("alice@x.com", "alice", ds)
	assert.Equal(t, okFirst, okSecond)
	assert.Equal(t, first, second)
}

func TestEmailPrefix(t *testing.T) {
	assert.Equal(t, "alice", EmailPrefix("Alice@X.com"))
	assert.Equal(t, "noat", EmailPrefix("noat"))
}
