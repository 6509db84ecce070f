package errmon

import "errors"

// Report is the uniform shape forwarded to consumers under the "error" key.
type Report struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

// Normalize converts err into a Report. The message is the first non-empty
// of the response text and Error(); the status comes from a StatusCoder
// anywhere in the chain.
func Normalize(err error) Report {
	if err == nil {
		return Report{}
	}

	var r Report
	var rt ResponseTexter
	if errors.As(err, &rt) {
		r.Message = rt.ResponseText()
	}
	if r.Message == "" {
		r.Message = err.Error()
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		r.Status = sc.StatusCode()
	}
	return r
}

// panicError converts a recovered value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		var pe *PanicError
		if errors.As(err, &pe) {
			return err
		}
	}
	return &PanicError{Value: v}
}
