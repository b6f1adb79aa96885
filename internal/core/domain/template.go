package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EntryTemplate is a pre-filled entry appended by "add defaults".
type EntryTemplate struct {
	Workorder   string
	Phase       string
	Hours       float64
	Description string
	Action      Action
	TimeCode    TimeCode
}

// Template field names accepted by EntryTemplateFromFields.
const (
	FieldWorkorder   = "workorder"
	FieldPhase       = "phase"
	FieldHours       = "hours"
	FieldDescription = "description"
	FieldAction      = "action"
	FieldTimeCode    = "time_code"
)

// DefaultEntryTemplates returns the built-in overhead entries.
func DefaultEntryTemplates() []EntryTemplate {
	return []EntryTemplate{
		{
			Workorder:   "000032",
			Phase:       "039",
			Hours:       0.5,
			Description: "BREAK",
			Action:      ActionOverhead,
			TimeCode:    TimeCodeRegular,
		},
		{
			Workorder:   "000020",
			Phase:       "039",
			Hours:       3.5,
			Description: "LEAD WORK",
			Action:      ActionOverhead,
			TimeCode:    TimeCodeRegular,
		},
	}
}

// EntryTemplateFromFields builds a template from loosely typed key/value
// data such as a decoded TOML table. Unknown keys are rejected.
func EntryTemplateFromFields(fields map[string]any) (EntryTemplate, error) {
	var unknown []string
	for k := range fields {
		switch k {
		case FieldWorkorder, FieldPhase, FieldHours, FieldDescription, FieldAction, FieldTimeCode:
		default:
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return EntryTemplate{}, fmt.Errorf("%w: unknown template fields %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}

	t := EntryTemplate{
		Workorder:   stringField(fields, FieldWorkorder),
		Phase:       stringField(fields, FieldPhase),
		Description: stringField(fields, FieldDescription),
		Action:      Action(stringField(fields, FieldAction)),
		TimeCode:    TimeCode(stringField(fields, FieldTimeCode)),
	}

	switch v := fields[FieldHours].(type) {
	case nil:
	case float64:
		t.Hours = v
	case int64:
		t.Hours = float64(v)
	case int:
		t.Hours = float64(v)
	case string:
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return EntryTemplate{}, fmt.Errorf("%w: hours %q", ErrInvalidInput, v)
		}
		t.Hours = h
	default:
		return EntryTemplate{}, fmt.Errorf("%w: hours has type %T", ErrInvalidInput, v)
	}
	return t, nil
}

// Fields renders the template as key/value data, the inverse of
// EntryTemplateFromFields.
func (t EntryTemplate) Fields() map[string]any {
	return map[string]any{
		FieldWorkorder:   t.Workorder,
		FieldPhase:       t.Phase,
		FieldHours:       t.Hours,
		FieldDescription: t.Description,
		FieldAction:      string(t.Action),
		FieldTimeCode:    string(t.TimeCode),
	}
}

// Entry instantiates the template for a date and line item.
func (t EntryTemplate) Entry(date time.Time, lineItem int) Entry {
	return Entry{
		WorkDate:    date,
		LineItem:    lineItem,
		Workorder:   t.Workorder,
		Phase:       t.Phase,
		Hours:       t.Hours,
		Description: t.Description,
		Action:      t.Action,
		TimeCode:    t.TimeCode,
	}
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
