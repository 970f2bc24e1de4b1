package advisor

// QuickReply is a predefined button that injects a canned question.
type QuickReply struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var quickReplies = []QuickReply{
	{ID: "care", Label: "Growing tips"},
	{ID: "water", Label: "Irrigation"},
	{ID: "disease", Label: "Pests & diseases"},
	{ID: "fertilizer", Label: "Fertilizer"},
	{ID: "market", Label: "Market prices"},
	{ID: "weather", Label: "Weather impact"},
	{ID: "sunlight", Label: "Sunlight"},
}

var quickReplyQuestions = map[string]string{
	"care":       "What are the best practices for growing {plant}?",
	"water":      "What's the optimal irrigation schedule for {plant} in my region?",
	"disease":    "What diseases and pests commonly affect {plant} crops?",
	"fertilizer": "What fertilizer schedule is recommended for {plant}?",
	"sunlight":   "How much sunlight does {plant} need for optimal yield?",
	"market":     "What are current market prices for {plant}?",
	"weather":    "How will upcoming weather affect my {plant} crop?",
}

const fallbackQuestion = "Tell me more about growing {plant} commercially."

// QuickReplies lists the quick reply buttons in display order.
func QuickReplies() []QuickReply {
	return append([]QuickReply(nil), quickReplies...)
}

// QuickReplyQuestion maps a button identifier to the question it asks
// about subjectName. Unknown identifiers get a generic question.
func QuickReplyQuestion(buttonID, subjectName string) string {
	question, ok := quickReplyQuestions[buttonID]
	if !ok {
		question = fallbackQuestion
	}
	return render(question, subjectName)
}

// IsQuickReply reports whether buttonID is part of the catalog.
func IsQuickReply(buttonID string) bool {
	_, ok := quickReplyQuestions[buttonID]
	return ok
}
