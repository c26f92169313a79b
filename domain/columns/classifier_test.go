package columns

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

func TestDetectRole_SubstringRules(t *testing.T) {
	ds := mustDataset(t, "Timestamp,Username,StudentName,EmailAddress,PreTestScore,PostTestScore,CourseName\nx,x,x,x,1,2,x\n")

	tests := []struct {
		role Role
		want string
	}{
		{RoleEmail, "EmailAddress"},
		// "Username" contains "name" but also "user", so it must be skipped.
		{RoleName, "StudentName"},
		{RolePreScore, "PreTestScore"},
		{RolePostScore, "PostTestScore"},
		{RoleCourse, "CourseName"},
	}
	for _, tt := range tests {
		got, ok := DetectRole(ds, tt.role)
		require.True(t, ok, "role %s", tt.role)
		assert.Equal(t, tt.want, got, "role %s", tt.role)
	}
}

func TestDetectRole_FirstMatchWins(t *testing.T) {
	ds := mustDataset(t, "WorkEmail,HomeEmail\nx,y\n")

	got, ok := DetectRole(ds, RoleEmail)
	require.True(t, ok)
	assert.Equal(t, "WorkEmail", got)
}

func TestDetectRole_CaseInsensitive(t *testing.T) {
	ds := mustDataset(t, "EMAIL,PRESCORE\nx,1\n")

	_, ok := DetectRole(ds, RoleEmail)
	assert.True(t, ok)
	_, ok = DetectRole(ds, RolePreScore)
	assert.True(t, ok)
}

func TestDetectRole_Unresolved(t *testing.T) {
	ds := mustDataset(t, "Timestamp,Answer\nx,y\n")

	_, ok := DetectRole(ds, RoleEmail)
	assert.False(t, ok)
	_, ok = DetectRole(ds, RolePreScore)
	assert.False(t, ok)
}

func TestDetectScoreColumns_ReturnsAllInOrder(t *testing.T) {
	ds := mustDataset(t, "PostScore2,PreTestScore,PostTestScore,PreScoreFinal\n1,2,3,4\n")

	assert.Equal(t, []string{"PreTestScore", "PreScoreFinal"}, DetectScoreColumns(ds, "pre"))
	assert.Equal(t, []string{"PostScore2", "PostTestScore"}, DetectScoreColumns(ds, "post"))
}

func TestDetectScoreColumns_RequiresBothSubstrings(t *testing.T) {
	ds := mustDataset(t, "PreTest,Score\n1,2\n")
	assert.Empty(t, DetectScoreColumns(ds, "pre"))
}

func TestResolve(t *testing.T) {
	ds := mustDataset(t, "Name,Email,PreTestScore,PostTestScore\nAlice,alice@x.com,40,95\n")

	rm := Resolve(ds)
	assert.True(t, rm.Has(RoleEmail))
	assert.True(t, rm.Has(RoleName))
	assert.True(t, rm.Has(RolePreScore))
	assert.True(t, rm.Has(RolePostScore))
	assert.False(t, rm.Has(RoleCourse))
}
