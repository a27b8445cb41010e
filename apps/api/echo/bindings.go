package echoapi

// SelectRequest is a forward navigation event: the card's level and id.
type SelectRequest struct {
	Level string `json:"level"`
	Value string `json:"value"`
}
