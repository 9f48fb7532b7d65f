package utils

// ResponseCode business response code
type ResponseCode int

// Response codes. 0 is success; 1xxx are client mistakes, 5xxx are
// internal failures.
const (
	CodeSuccess ResponseCode = 0

	CodeInvalidParam ResponseCode = 1001
	CodeUnauthorized ResponseCode = 1002
	CodeForbidden    ResponseCode = 1003

	CodeUserNotFound    ResponseCode = 1101
	CodeProductNotFound ResponseCode = 1102
	CodeOrderNotFound   ResponseCode = 1103
	CodePostNotFound    ResponseCode = 1104

	CodeCartEmpty          ResponseCode = 1201
	CodeProductUnavailable ResponseCode = 1202
	CodeInsufficientPoints ResponseCode = 1203
	CodeInvalidTransition  ResponseCode = 1204
	CodeAlreadyProcessed   ResponseCode = 1205

	CodeInternalError ResponseCode = 5000
	CodeDatabaseError ResponseCode = 5001
	CodeRedisError    ResponseCode = 5002
)

// IsClientError check the code maps to a caller mistake (4xx-equivalent)
func (c ResponseCode) IsClientError() bool {
	return c >= 1000 && c < 5000
}
