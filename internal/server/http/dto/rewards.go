package dto

// RewardCallback describes a signed postback from the reward network.
type RewardCallback struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	TransactionID string `json:"transaction_id"`
	Points        int64  `json:"points"`
	Signature     string `json:"signature"`
}

// RewardCallbackResponse acknowledges a credited postback.
type RewardCallbackResponse struct {
	UserID string `json:"user_id"`
	Points int64  `json:"points"`
}
