package semantic

import (
	"github.com/ShanawazS-bit/AI-Honeypot/pkg/models"
)

// scamPrototypes holds the prototype phrases per scam-narrative category.
// Phrases are bilingual (English and Hindi transliteration) to support
// code-mixed calls. Order matters for the keyword fallback: the first
// matching phrase wins.
var scamPrototypes = []struct {
	Label   models.IntentLabel
	Phrases []string
}{
	{models.IntentGreeting, []string{
		"Hello", "Good morning", "How are you today?",
		"Namaste", "Kya haal hai", "Kaise hain aap",
	}},
	{models.IntentAuthority, []string{
		"I am calling from the police", "This is the IRS", "Social Security Administration",
		"Microsoft Technical Support", "Bank Security Department",
		"Main police station se bol raha hoon", "Hum bank se bol rahe hain", "RBI se call kar rahe hain",
	}},
	{models.IntentFear, []string{
		"Your account has been compromised", "Suspicious activity detected",
		"Warrant for your arrest", "You will be taken into custody",
		"Legal action against you",
		"Aapka account band ho jayega", "Aap par case darj hua hai", "Police aapko arrest karegi",
	}},
	{models.IntentUrgency, []string{
		"You must act immediately", "Right now", "Do not hang up",
		"Before it is too late", "Within the next hour",
		"Abhi kijiye", "Jaldi kariye", "Phone mat katiye",
	}},
	{models.IntentPayment, []string{
		"Buy a gift card", "Target gift card", "Google Play card",
		"Bitcoin machine", "Wire transfer", "Verify your credit card number",
		"Paise transfer karein", "OTP batayein", "Gift card kharidiye",
	}},
}
