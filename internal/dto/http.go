package dto

const (
	MessageValuationNotFound = "평가를 찾을 수 없습니다."
	MessageValuationDeleted  = "평가가 삭제되었습니다."
)

// MessageResponse is the body of every error and of delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) *MessageResponse {
	return &MessageResponse{Message: message}
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
