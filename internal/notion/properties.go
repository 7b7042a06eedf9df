package notion

import "strings"

// joinPlainText joins the plain-text fragments of a rich-text run list with
// single spaces. Runs constructed locally carry their text in the literal
// content rather than plain_text, so that is the fallback.
func joinPlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	parts := make([]string, len(runs))
	for i, run := range runs {
		text := run.PlainText
		if text == "" && run.Text != nil {
			text = run.Text.Content
		}
		parts[i] = text
	}
	return strings.Join(parts, " ")
}

// ExtractTitle returns the joined plain text of a title property.
// A nil or empty property yields the empty string.
func ExtractTitle(p *Property) string {
	if p == nil {
		return ""
	}
	return joinPlainText(p.Title)
}

// ExtractSelect returns the selected option's name of a select property.
// Anything else, including a select with no selection, yields the empty
// string.
func ExtractSelect(p *Property) string {
	if p == nil || p.Type != "select" || p.Select == nil {
		return ""
	}
	return p.Select.Name
}

// ExtractMultiSelect returns the selected option names of a multi_select
// property, preserving the API's order. Anything else yields an empty slice.
func ExtractMultiSelect(p *Property) []string {
	if p == nil || p.Type != "multi_select" {
		return []string{}
	}
	names := make([]string, 0, len(p.MultiSelect))
	for _, option := range p.MultiSelect {
		names = append(names, option.Name)
	}
	return names
}

// FormatProperty converts a property into a plain value based on its type
// tag. Unrecognized tags fall back to the tag-keyed raw payload, passed
// through unmodified. A nil property yields nil.
func FormatProperty(p *Property) any {
	if p == nil {
		return nil
	}

	switch p.Type {
	case "title":
		return joinPlainText(p.Title)
	case "rich_text":
		return joinPlainText(p.RichText)
	case "select":
		if p.Select == nil {
			return nil
		}
		return p.Select.Name
	case "multi_select":
		names := make([]string, 0, len(p.MultiSelect))
		for _, option := range p.MultiSelect {
			names = append(names, option.Name)
		}
		return names
	case "date":
		if p.Date == nil {
			return nil
		}
		return p.Date
	default:
		if p.Raw == nil {
			return nil
		}
		return p.Raw
	}
}
