package utils

// ResponseData is the envelope for every REST response. Status drives the
// HTTP status code only and is excluded from the serialized body.
type ResponseData struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Results any    `json:"results,omitempty"`
}

// PanicIfNeeded panics with err so the recovery middleware can translate it
// into an HTTP response. Handlers call it instead of returning errors.
func PanicIfNeeded(err any) {
	if err != nil {
		panic(err)
	}
}
