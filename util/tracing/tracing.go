package tracing

// Context carries per-request identifiers through handler, helper and repo
// layers so log lines from one request can be correlated.
type Context struct {
	RequestID     string `json:"request_id"`
	RequestSource string `json:"request_source"`
}
