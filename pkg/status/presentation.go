package status

import "fmt"

// Badge is the display metadata of a status. Color is a semantic token and
// Icon a symbolic identifier; rendering them is left to the display surface.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// presentations must hold an entry for every member of all; init refuses to
// start otherwise.
var presentations = map[Status]Badge{
	Pending: {
		Label: "Pending",
		Color: "yellow",
		Icon:  "question-mark-circle",
	},
	Confirmed: {
		Label: "Confirmed",
		Color: "success",
		Icon:  "check-circle",
	},
	Cancelled: {
		Label: "Cancelled",
		Color: "danger",
		Icon:  "x-circle",
	},
}

func init() {
	if err := checkPresentations(all, presentations); err != nil {
		panic(err)
	}
}

func checkPresentations(members []Status, table map[Status]Badge) error {
	for _, st := range members {
		b, ok := table[st]
		if !ok {
			return fmt.Errorf("status %q has no presentation", st.slug)
		}
		if b.Label == "" || b.Color == "" || b.Icon == "" {
			return fmt.Errorf("status %q has an incomplete presentation: %+v", st.slug, b)
		}
	}
	if len(table) != len(members) {
		return fmt.Errorf("presentation table has %d entries for %d statuses", len(table), len(members))
	}
	return nil
}

// Badge returns the label, color and icon of s. The zero Status yields an
// empty Badge.
func (s Status) Badge() Badge {
	return presentations[s]
}

func (s Status) Label() string {
	return presentations[s].Label
}

func (s Status) Color() string {
	return presentations[s].Color
}

func (s Status) Icon() string {
	return presentations[s].Icon
}
