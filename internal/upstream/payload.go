package upstream

// PartKind tells a provider how to render one piece of user content.
type PartKind string

const (
	PartText  PartKind = "text"
	PartImage PartKind = "image"
)

// Part is one piece of the single user message. Order matters to the model
// and every provider keeps it.
type Part struct {
	Kind      PartKind
	Text      string
	MediaType string
	Data      string // base64, image parts only
}

func TextPart(text string) Part {
	return Part{Kind: PartText, Text: text}
}

func ImagePart(mediaType, base64Data string) Part {
	return Part{Kind: PartImage, MediaType: mediaType, Data: base64Data}
}

// Payload is a provider-neutral request: model, token limit, system
// instruction and the parts of one user message.
type Payload struct {
	Model     string
	MaxTokens int64
	System    string
	Parts     []Part
}
