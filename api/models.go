package api

// CredentialKinds accepted and returned by the API. Binary payloads
// travel base64-encoded in the JSON value field.
const (
	KindText   = "text"
	KindBinary = "binary"
)

// CredentialRequest is the JSON body for PUT /wallet/keys/{name}.
type CredentialRequest struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// CredentialResponse is returned from GET /wallet/keys/{name}.
type CredentialResponse struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// ListNamesResponse is returned from GET /wallet/keys.
type ListNamesResponse struct {
	Names []string `json:"names"`
}

// ExportResponse is returned from GET /wallet/export.
type ExportResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}

// ErrorResponse is the JSON shape of all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
