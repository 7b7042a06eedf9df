package notion

import (
	"encoding/json"
	"strings"
)

// RichText is a single rich-text run inside a title, rich_text property,
// or text-bearing block.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the literal content of a "text" rich-text run.
type TextContent struct {
	Content string `json:"content"`
}

// NewTextRun creates a rich-text run of kind "text" carrying the given content.
// This is the only run kind the write path produces; formatting (bold, links,
// etc.) is not representable when writing.
func NewTextRun(content string) RichText {
	return RichText{
		Type: "text",
		Text: &TextContent{Content: content},
	}
}

// SelectOption is a single option of a select or multi_select property.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// DateValue is the payload of a date property. Start and End keep their
// null-ability so formatted output mirrors what the API returned.
type DateValue struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// Emoji is the icon payload used by callout blocks.
type Emoji struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
}

// Property is a typed page property. The type tag on the wire is
// authoritative: the payload field matching the tag is decoded into the
// corresponding typed field, and any other tag's payload is retained raw so
// it can be passed through unmodified.
type Property struct {
	ID   string
	Type string

	Title       []RichText
	RichText    []RichText
	Select      *SelectOption
	MultiSelect []SelectOption
	Date        *DateValue

	// Raw holds the tag-keyed payload for property types the codec does not
	// interpret.
	Raw json.RawMessage
}

// UnmarshalJSON decodes the type tag first and then only the payload named
// after it. The property's name in the parent map plays no role here.
func (p *Property) UnmarshalJSON(data []byte) error {
	var head struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	p.ID = head.ID
	p.Type = head.Type

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	payload, ok := fields[head.Type]
	if !ok || string(payload) == "null" {
		return nil
	}

	switch head.Type {
	case "title":
		return json.Unmarshal(payload, &p.Title)
	case "rich_text":
		return json.Unmarshal(payload, &p.RichText)
	case "select":
		return json.Unmarshal(payload, &p.Select)
	case "multi_select":
		return json.Unmarshal(payload, &p.MultiSelect)
	case "date":
		return json.Unmarshal(payload, &p.Date)
	default:
		p.Raw = payload
	}
	return nil
}

// Page is a single document in the configured database.
type Page struct {
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property returns the named property, or nil if the page doesn't have it.
func (p *Page) Property(name string) *Property {
	if prop, ok := p.Properties[name]; ok {
		return &prop
	}
	return nil
}

// URL returns the public notion.so URL for the page, derived from its ID
// with the hyphens stripped.
func (p *Page) URL() string {
	return "https://www.notion.so/" + strings.ReplaceAll(p.ID, "-", "")
}

// QueryResult is the envelope of a database query response.
type QueryResult struct {
	Results []Page `json:"results"`
}

// textLikeBlockTypes are the block kinds whose content is a flat rich-text
// run list; everything else is carried through opaquely.
var textLikeBlockTypes = map[string]bool{
	"paragraph":          true,
	"heading_1":          true,
	"heading_2":          true,
	"heading_3":          true,
	"bulleted_list_item": true,
	"numbered_list_item": true,
}

// IsTextLikeBlockType reports whether the given block type carries a flat
// rich-text run list.
func IsTextLikeBlockType(blockType string) bool {
	return textLikeBlockTypes[blockType]
}

// Block is a unit of page content. Text-like kinds decode their rich-text
// runs; any other kind retains its tag-keyed payload raw, for opaque
// pass-through on reads.
//
// Blocks constructed for writes (NewTextBlock, NewCalloutBlock) marshal back
// into the API's nested shape, with the payload keyed by the block type.
type Block struct {
	Object   string
	Type     string
	RichText []RichText

	// Write-path extras for callout blocks.
	Icon  *Emoji
	Color string

	// Raw holds the tag-keyed payload for block types the codec does not
	// interpret.
	Raw json.RawMessage
}

// blockBody is the decoded payload of a text-like block.
type blockBody struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Emoji     `json:"icon,omitempty"`
	Color    string     `json:"color,omitempty"`
}

// UnmarshalJSON branches on the type tag, never on anything else.
func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Object string `json:"object"`
		Type   string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	b.Object = head.Object
	b.Type = head.Type
	if head.Type == "" {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	payload, ok := fields[head.Type]
	if !ok || string(payload) == "null" {
		return nil
	}

	if IsTextLikeBlockType(head.Type) {
		var body blockBody
		if err := json.Unmarshal(payload, &body); err != nil {
			return err
		}
		b.RichText = body.RichText
		return nil
	}

	b.Raw = payload
	return nil
}

// MarshalJSON produces the API's nested block shape: the payload sits under
// a key named after the block type.
func (b Block) MarshalJSON() ([]byte, error) {
	object := b.Object
	if object == "" {
		object = "block"
	}

	var payload any
	if b.Raw != nil {
		payload = b.Raw
	} else {
		runs := b.RichText
		if runs == nil {
			runs = []RichText{}
		}
		payload = blockBody{
			RichText: runs,
			Icon:     b.Icon,
			Color:    b.Color,
		}
	}

	return json.Marshal(map[string]any{
		"object": object,
		"type":   b.Type,
		b.Type:   payload,
	})
}

// blockChildrenResult is the envelope of a block-children response.
type blockChildrenResult struct {
	Results []Block `json:"results"`
}
