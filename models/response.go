package models

// Insights is a typed view of the minFraud response fields most callers
// act on. Pointer fields are nil when the service did not return the field
// or returned it as "NA"/"NotFound".
type Insights struct {
	// RiskScore is the estimated probability, 0.01 to 100, that the
	// transaction is fraudulent.
	RiskScore *float64

	// Score is the legacy fraud score, 0 to 10.
	Score *float64

	// ProxyScore is the likelihood, 0 to 4, that the IP is an open proxy.
	ProxyScore *float64

	// Distance is the distance in kilometres between the IP location and
	// the billing address.
	Distance *int64

	CountryMatch    *bool
	HighRiskCountry *bool
	AnonymousProxy  *bool
	FreeMail        *bool
	CarderEmail     *bool

	// MaxmindID identifies the transaction at MaxMind.
	MaxmindID string

	// QueriesRemaining is the number of queries left on the license key.
	QueriesRemaining *int64

	// Warning holds the err field when it carries a warning code.
	Warning string
}

// Risk levels derived from RiskScore.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskLevel buckets RiskScore: below 5 is low, below 30 medium, otherwise
// high. It returns "" when no risk score was returned.
func (i Insights) RiskLevel() string {
	if i.RiskScore == nil {
		return ""
	}
	switch s := *i.RiskScore; {
	case s < 5:
		return RiskLow
	case s < 30:
		return RiskMedium
	}
	return RiskHigh
}
