package core

import "encoding/json"

// DefaultDatabase is used when no database is configured.
const DefaultDatabase = "_system"

type ConnectionParams struct {
	ID       ConnectionID
	Name     string
	URL      string
	Database string
	Username string
	Password string
	// DebugHeaders adds request and response headers to debug logs.
	DebugHeaders bool
}

// Expand returns a copy of the original parameters with expanded fields
func (p *ConnectionParams) Expand() *ConnectionParams {
	return &ConnectionParams{
		ID:           ConnectionID(expandOrDefault(string(p.ID))),
		Name:         expandOrDefault(p.Name),
		URL:          expandOrDefault(p.URL),
		Database:     expandOrDefault(p.Database),
		Username:     expandOrDefault(p.Username),
		Password:     expandOrDefault(p.Password),
		DebugHeaders: p.DebugHeaders,
	}
}

// MarshalJSON leaves out the password.
func (cp *ConnectionParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		URL      string `json:"url"`
		Database string `json:"database"`
		Username string `json:"username,omitempty"`
	}{
		ID:       string(cp.ID),
		Name:     cp.Name,
		URL:      cp.URL,
		Database: cp.Database,
		Username: cp.Username,
	})
}
