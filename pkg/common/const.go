package common

// Cache keys. Format verbs are filled with the record identifier.
const (
	KEY_VALUATION = "valuation:%s"
)
