package notion

import "encoding/json"

// CalloutColor is the background color applied to comment callouts.
const CalloutColor = "gray_background"

// FormattedBlock is the compact block shape returned to callers: text-like
// blocks carry their flattened text, anything else carries its raw content.
type FormattedBlock struct {
	Type    string          `json:"type"`
	Text    *string         `json:"text,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// FormatBlock converts a block into its compact shape based on its type tag.
// Text-like kinds yield {type, text} with the space-joined plain text of
// their runs; any other kind yields {type, content} with the raw payload
// passed through unmodified. A block without a type yields nil.
func FormatBlock(b *Block) *FormattedBlock {
	if b == nil || b.Type == "" {
		return nil
	}

	if IsTextLikeBlockType(b.Type) {
		text := joinPlainText(b.RichText)
		return &FormattedBlock{
			Type: b.Type,
			Text: &text,
		}
	}

	content := b.Raw
	if content == nil {
		content = json.RawMessage("{}")
	}
	return &FormattedBlock{
		Type:    b.Type,
		Content: content,
	}
}

// NewTextBlock constructs a minimal block of the given type carrying a
// single "text" rich-text run with the literal text.
func NewTextBlock(blockType, text string) Block {
	return Block{
		Object:   "block",
		Type:     blockType,
		RichText: []RichText{NewTextRun(text)},
	}
}

// NewCalloutBlock constructs a callout block carrying the comment text, an
// emoji icon, and the fixed background color.
func NewCalloutBlock(text, icon string) Block {
	return Block{
		Object:   "block",
		Type:     "callout",
		RichText: []RichText{NewTextRun(text)},
		Icon: &Emoji{
			Type:  "emoji",
			Emoji: icon,
		},
		Color: CalloutColor,
	}
}
