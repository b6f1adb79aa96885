package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFormControls(t *testing.T) {
	c := DefaultFormControls()

	require.NoError(t, c.Validate())
	assert.Equal(t, "weblogin_netid", c.LoginUser)
	assert.Equal(t, "mainForm:TIMECARD_DETAIL_EDIT_content:messages", c.ErrorText)
	assert.Len(t, c.DetailFields(), 7)
}

func TestFormControls_Lookup(t *testing.T) {
	c := DefaultFormControls()

	id, ok := c.Lookup("save")
	assert.True(t, ok)
	assert.Equal(t, "mainForm:buttonPanel:save", id)

	_, ok = c.Lookup("launch")
	assert.False(t, ok)
}

func TestControlNames(t *testing.T) {
	names := ControlNames()
	assert.Len(t, names, 18)
	assert.IsIncreasing(t, names)
}

func TestFormControls_WithOverrides(t *testing.T) {
	base := DefaultFormControls()

	c, err := base.WithOverrides(map[string]string{"save": "form:save", "hours": "form:hours"})
	require.NoError(t, err)
	assert.Equal(t, "form:save", c.Save)
	assert.Equal(t, "form:hours", c.Hours)
	assert.Equal(t, base.Done, c.Done)
	// base untouched
	assert.Equal(t, "mainForm:buttonPanel:save", base.Save)
}

func TestFormControls_WithOverrides_Errors(t *testing.T) {
	base := DefaultFormControls()

	_, err := base.WithOverrides(map[string]string{"launch": "x"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = base.WithOverrides(map[string]string{"save": " "})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFormControls_Validate(t *testing.T) {
	c := DefaultFormControls()
	c.Phase = ""
	err := c.Validate()
	assert.True(t, errors.Is(err, ErrConfigMissing))
	assert.Contains(t, err.Error(), "phase")
}
