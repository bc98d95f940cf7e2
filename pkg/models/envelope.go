package models

// Envelope is the JSON shape every catalog endpoint responds with.
//
// Two invariants hold everywhere:
//   - success=false implies Data is empty or nil
//   - fallback=true implies success=true (degraded data is never a hard failure)
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Count     *int   `json:"count,omitempty"`
	Error     string `json:"error,omitempty"`
	Fallback  bool   `json:"fallback,omitempty"`
	Message   string `json:"message,omitempty"`
	Category  string `json:"category,omitempty"`
	Query     string `json:"query,omitempty"`
	Source    string `json:"source,omitempty"`
	Algorithm string `json:"algorithm,omitempty"`
}

// IntPtr is a small helper for the optional Count field.
func IntPtr(n int) *int { return &n }
