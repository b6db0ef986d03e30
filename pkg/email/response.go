package email

import (
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 512

// checkResponse turns any non-2xx reply into an error carrying a prefix of the body.
func checkResponse(provider string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%s API error: status %d: %s", provider, resp.StatusCode, string(body))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
