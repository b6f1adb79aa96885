package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FormControls maps each role in the remote form to the opaque
// identifier of the control that plays it.
type FormControls struct {
	LoginUser     string
	LoginPassword string
	LoginSubmit   string

	New  string
	Done string
	Save string

	AddFirstLine string
	AddNextLine  string

	Person   string
	WorkDate string

	Description string
	Hours       string
	Workorder   string
	Phase       string
	Action      string
	LeaveCode   string
	LaborCode   string
	ErrorText   string
}

const detailPrefix = "mainForm:TIMECARD_DETAIL_EDIT_content:"

// DefaultFormControls returns the identifiers used by the remote system.
func DefaultFormControls() FormControls {
	return FormControls{
		LoginUser:     "weblogin_netid",
		LoginPassword: "weblogin_password",
		LoginSubmit:   "submit_button",
		New:           "mainForm:buttonPanel:new",
		Done:          "mainForm:buttonPanel:done",
		Save:          "mainForm:buttonPanel:save",
		AddFirstLine:  "mainForm:TIMECARD_EDIT_content:oldTimecardLineList2:addTimecardItemButton2",
		AddNextLine:   "mainForm:buttonPanel:newDetail",
		Person:        "mainForm:TIMECARD_EDIT_content:ShopPersonZoom:level1",
		WorkDate:      "mainForm:TIMECARD_EDIT_content:workDateValue",
		Description:   detailPrefix + "ae_p_wka_d_description",
		Hours:         detailPrefix + "actHrsValue2",
		Workorder:     detailPrefix + "proposalZoom2:level0",
		Phase:         detailPrefix + "proposalZoom2:level1",
		Action:        detailPrefix + "actionTakenZoom2:level1",
		LeaveCode:     detailPrefix + "leaveCodeZoom2:level0",
		LaborCode:     detailPrefix + "timeTypeZoom2:level0",
		ErrorText:     detailPrefix + "messages",
	}
}

// DetailFields returns the entry-detail inputs cleared before each entry,
// in clearing order.
func (c FormControls) DetailFields() []string {
	return []string{c.Workorder, c.Phase, c.Description, c.Action, c.Hours, c.LeaveCode, c.LaborCode}
}

// fields binds configuration names to the struct fields.
func (c *FormControls) fields() map[string]*string {
	return map[string]*string{
		"login_user":     &c.LoginUser,
		"login_password": &c.LoginPassword,
		"login_submit":   &c.LoginSubmit,
		"new":            &c.New,
		"done":           &c.Done,
		"save":           &c.Save,
		"add_first_line": &c.AddFirstLine,
		"add_next_line":  &c.AddNextLine,
		"person":         &c.Person,
		"work_date":      &c.WorkDate,
		"description":    &c.Description,
		"hours":          &c.Hours,
		"workorder":      &c.Workorder,
		"phase":          &c.Phase,
		"action":         &c.Action,
		"leave_code":     &c.LeaveCode,
		"labor_code":     &c.LaborCode,
		"error_text":     &c.ErrorText,
	}
}

// ControlNames returns the configuration names of all controls, sorted.
func ControlNames() []string {
	var c FormControls
	names := make([]string, 0, len(c.fields()))
	for name := range c.fields() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the identifier configured under name.
func (c FormControls) Lookup(name string) (string, bool) {
	p, ok := c.fields()[name]
	if !ok {
		return "", false
	}
	return *p, true
}

// WithOverrides returns a copy with the named controls replaced.
// Unknown names and empty identifiers are rejected.
func (c FormControls) WithOverrides(overrides map[string]string) (FormControls, error) {
	out := c
	fields := out.fields()
	var unknown []string
	for name, id := range overrides {
		p, ok := fields[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if strings.TrimSpace(id) == "" {
			return c, fmt.Errorf("%w: control %s has an empty identifier", ErrInvalidInput, name)
		}
		*p = id
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return c, fmt.Errorf("%w: unknown controls %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}
	return out, nil
}

// Validate checks that every control has an identifier.
func (c FormControls) Validate() error {
	for _, name := range ControlNames() {
		if id, _ := c.Lookup(name); id == "" {
			return fmt.Errorf("%w: control %s has no identifier", ErrConfigMissing, name)
		}
	}
	return nil
}
