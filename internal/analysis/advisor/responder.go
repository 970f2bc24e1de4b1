package advisor

import "strings"

// Topic identifies which scripted rule answered a message.
type Topic string

const (
	Watering   Topic = "watering"
	Fertilizer Topic = "fertilizer"
	Disease    Topic = "disease"
	Sunlight   Topic = "sunlight"
	Care       Topic = "care"
	Market     Topic = "market"
	Weather    Topic = "weather"
	Fallback   Topic = "fallback"
)

// placeholder is replaced by the subject name in every template.
const placeholder = "{plant}"

// Greeting opens every conversation.
const Greeting = "Hello! How can I help with your plant today?"

// Rule pairs a set of trigger substrings with the advisory it produces.
type Rule struct {
	Topic    Topic
	Triggers []string
	Template string
}

// rules are evaluated top to bottom; the first rule with a matching trigger wins.
var rules = []Rule{
	{
		Topic:    Watering,
		Triggers: []string{"water"},
		Template: "For your {plant} crop, maintain consistent soil moisture. During the vegetative stage, water when the top 2-3 cm of soil feels dry. Reduce watering during ripening to improve flavor and reduce disease risk.",
	},
	{
		Topic:    Fertilizer,
		Triggers: []string{"fertiliz"},
		Template: "For {plant}, apply nitrogen-rich fertilizer during early growth stages. Switch to phosphorus and potassium-rich fertilizer during flowering and fruiting. Consider organic options like compost tea or manure for sustainable farming.",
	},
	{
		Topic:    Disease,
		Triggers: []string{"disease", "pest"},
		Template: "Based on your {plant} image, I've detected early signs of Early Blight. Remove infected leaves immediately and improve air circulation between plants. Apply copper-based fungicide every 7-10 days. For prevention, practice crop rotation and avoid overhead irrigation.",
	},
	{
		Topic:    Sunlight,
		Triggers: []string{"sun", "light"},
		Template: "{plant} requires full sun exposure (6-8 hours daily) for optimal yield. In your region's climate, consider providing afternoon shade during the hottest months to prevent sun scald on fruits.",
	},
	{
		Topic:    Care,
		Triggers: []string{"care", "tip"},
		Template: "For maximizing your {plant} yield: 1) Plant in well-draining soil with pH 6.0-6.8, 2) Space plants properly for air circulation, 3) Implement drip irrigation to reduce leaf wetness, 4) Apply mulch to conserve moisture and suppress weeds, 5) Consider companion planting with marigolds to deter pests.",
	},
	{
		Topic:    Market,
		Triggers: []string{"market", "price", "sell"},
		Template: "Current market prices for {plant} in your region range from $0.75-$1.25/kg depending on quality. Consider direct marketing to local restaurants for premium prices. Organic certified crops can command 20-30% higher prices.",
	},
	{
		Topic:    Weather,
		Triggers: []string{"weather", "rain", "forecast"},
		Template: "Based on weather forecasts for your region, expect moderate rainfall (15-20mm) over the next 5 days. Consider delaying any pesticide application until after this rain period. The upcoming humidity may increase disease pressure, so monitor your {plant} closely.",
	},
}

const fallbackTemplate = "Thank you for your question about your {plant} crop. To provide more specific advice for your farm, could you share more details about your soil type, irrigation method, or the specific symptoms you're observing?"

// Respond returns the canned advisory for userText with subjectName
// substituted verbatim. It never fails: unmatched text gets the fallback.
func Respond(userText, subjectName string) string {
	rule, ok := match(userText)
	if !ok {
		return render(fallbackTemplate, subjectName)
	}
	return render(rule.Template, subjectName)
}

// Classify reports the topic Respond would answer userText with.
func Classify(userText string) Topic {
	rule, ok := match(userText)
	if !ok {
		return Fallback
	}
	return rule.Topic
}

// Rules returns a copy of the ordered rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Triggers = append([]string(nil), r.Triggers...)
		out[i] = r
	}
	return out
}

func match(userText string) (Rule, bool) {
	normalized := strings.ToLower(userText)
	for _, rule := range rules {
		for _, trigger := range rule.Triggers {
			if strings.Contains(normalized, trigger) {
				return rule, true
			}
		}
	}
	return Rule{}, false
}

func render(template, subjectName string) string {
	return strings.ReplaceAll(template, placeholder, subjectName)
}
