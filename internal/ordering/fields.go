package ordering

// FieldChoice is a selectable sort option shown to administrators.
type FieldChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldChoices lists the sort options in the order they are offered.
func FieldChoices() []FieldChoice {
	return []FieldChoice{
		{Value: FieldDate, Label: "Date"},
		{Value: FieldTitle, Label: "Title"},
		{Value: FieldID, Label: "ID"},
		{Value: FieldModified, Label: "Last Modified"},
		{Value: FieldCustom, Label: "Custom"},
	}
}

// IsKnownField reports whether v is one of FieldChoices.
func IsKnownField(v string) bool {
	for _, c := range FieldChoices() {
		if c.Value == v {
			return true
		}
	}
	return false
}

// DefaultConfig is what an unconfigured installation behaves like.
func DefaultConfig() Config {
	return Config{OrderField: FieldDate}
}
