package util

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"strconv"
)

// ClassifyError labels an outbound call failure and reports whether a retry
// could succeed.
func ClassifyError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	// 响应格式错误，不可重试
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return false, "json_decode_error"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true, "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return false, "context_canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true, "network_timeout"
		}
		return true, "network_error"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true, "network_error"
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		// 5xx 与 429 可重试，其余 4xx 为请求本身问题
		return statusErr.Code >= 500 || statusErr.Code == 429, "http_status_error"
	}

	return false, "unknown_error"
}

// HTTPStatusError is returned when a remote service answers with a non-2xx status.
type HTTPStatusError struct {
	Service string
	Code    int
}

func (e *HTTPStatusError) Error() string {
	return e.Service + " returned status " + strconv.Itoa(e.Code)
}
