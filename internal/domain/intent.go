package domain

// IntentLabel attributes a user utterance to a capability category.
// The label is advisory: it names the agent shown as responding in the
// chat surface and never constrains which tool the coordinator invokes.
// The two can disagree; the label from classification wins for display.
type IntentLabel string

const (
	LabelWeather    IntentLabel = "Weather Agent"
	LabelEmail      IntentLabel = "Email Agent"
	LabelTranslator IntentLabel = "Translator Agent"
	LabelNews       IntentLabel = "News Agent"
	LabelCrypto     IntentLabel = "Crypto Agent"
	LabelHealth     IntentLabel = "Health Agent"
	LabelMotivation IntentLabel = "Motivation Agent"
	LabelGeneral    IntentLabel = "General Assistant"
)
