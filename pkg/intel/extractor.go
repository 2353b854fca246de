package intel

import (
	"regexp"
	"strings"
)

// Intelligence is the actionable information harvested from scammer
// messages over one session. Slices are de-duplicated and keep
// insertion order so callback payloads are stable.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

var (
	upiPattern   = regexp.MustCompile(`\b[a-zA-Z0-9._-]{2,}@[a-zA-Z]{2,}\b`)
	linkPattern  = regexp.MustCompile(`https?://[^\s<>"]+`)
	phonePattern = regexp.MustCompile(`(?:\+91[\s-]?)?\b[6-9]\d{9}\b`)
	// Account numbers: long digit runs that are not phone numbers.
	accountPattern = regexp.MustCompile(`\b\d{11,18}\b`)
)

// suspiciousKeywords are the scam-vocabulary markers worth reporting.
var suspiciousKeywords = []string{
	"otp", "gift card", "wire transfer", "bitcoin", "urgent",
	"blocked", "suspended", "verify", "arrest", "warrant",
	"refund", "kyc", "lottery", "customs", "penalty",
}

// Extractor accumulates intelligence across the messages of a session.
type Extractor struct {
	seen  map[string]bool
	intel Intelligence
}

// NewExtractor creates an empty session accumulator.
func NewExtractor() *Extractor {
	return &Extractor{seen: map[string]bool{}}
}

// Ingest scans one message and folds any findings into the session
// intelligence.
func (e *Extractor) Ingest(text string) {
	for _, link := range linkPattern.FindAllString(text, -1) {
		e.add(&e.intel.PhishingLinks, "link:"+link, link)
	}

	// Strip links first so URL fragments don't match the UPI pattern.
	stripped := linkPattern.ReplaceAllString(text, " ")

	for _, upi := range upiPattern.FindAllString(stripped, -1) {
		e.add(&e.intel.UPIIDs, "upi:"+upi, upi)
	}
	for _, phone := range phonePattern.FindAllString(stripped, -1) {
		e.add(&e.intel.PhoneNumbers, "phone:"+phone, phone)
	}
	for _, account := range accountPattern.FindAllString(stripped, -1) {
		if e.seen["phone:"+account] {
			continue
		}
		e.add(&e.intel.BankAccounts, "account:"+account, account)
	}

	lower := strings.ToLower(text)
	for _, kw := range suspiciousKeywords {
		if strings.Contains(lower, kw) {
			e.add(&e.intel.SuspiciousKeywords, "kw:"+kw, kw)
		}
	}
}

func (e *Extractor) add(dst *[]string, key, value string) {
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	*dst = append(*dst, value)
}

// Snapshot returns the accumulated intelligence with empty slices
// materialized, so JSON encodes arrays rather than nulls.
func (e *Extractor) Snapshot() Intelligence {
	out := e.intel
	if out.BankAccounts == nil {
		out.BankAccounts = []string{}
	}
	if out.UPIIDs == nil {
		out.UPIIDs = []string{}
	}
	if out.PhishingLinks == nil {
		out.PhishingLinks = []string{}
	}
	if out.PhoneNumbers == nil {
		out.PhoneNumbers = []string{}
	}
	if out.SuspiciousKeywords == nil {
		out.SuspiciousKeywords = []string{}
	}
	return out
}
