package user

import (
	"testing"

	"localinfo/internal/core/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegion = Region{Neighborhood: "neighbor", District: "district", City: "city"}

func TestNew_Success(t *testing.T) {
	u, err := New("test", "testNickName", "test@mail.com", "hashed", []string{"GENERAL"}, testRegion)
	require.NoError(t, err)

	assert.Equal(t, "test", u.Name)
	assert.Equal(t, "testNickName", u.Nickname)
	assert.Equal(t, "test@mail.com", u.Email)
	assert.Equal(t, "hashed", u.Password)
	assert.Equal(t, Roles{RoleGeneral}, u.Roles)
	assert.Equal(t, "neighbor", u.Region.Neighborhood)
}

func TestNew_Failure(t *testing.T) {
	_, err := New("", "", "test.com", "", []string{"WRONG"}, testRegion)
	require.Error(t, err)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	fields := apperr.FieldsOf(err)
	for _, f := range []string{"name", "nickname", "email", "password", "roles"} {
		assert.Contains(t, fields, f)
	}
}

func TestNew_DeduplicatesRoles(t *testing.T) {
	u, err := New("a", "b", "a@b.c", "x", []string{"general", "GENERAL", "admin"}, Region{})
	require.NoError(t, err)
	assert.Equal(t, Roles{RoleGeneral, RoleAdmin}, u.Roles)
}

func TestRoles_ValueAndScan(t *testing.T) {
	v, err := Roles{RoleGeneral, RoleAdmin}.Value()
	require.NoError(t, err)
	assert.Equal(t, "ADMIN,GENERAL", v)

	var r Roles
	require.NoError(t, r.Scan([]byte("ADMIN,GENERAL")))
	assert.True(t, r.Has(RoleAdmin))
	assert.True(t, r.Has(RoleGeneral))

	assert.Error(t, r.Scan("ROOT"))
}
