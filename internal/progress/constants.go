package progress

const (
	ErrMsgDecodeProgress     = "failed to decode progress document"
	LogMsgNoProgressDocument = "No progress document, using empty snapshot"
)
