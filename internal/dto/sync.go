package dto

// SyncConfigRequest points the service at a different remote document
// endpoint at runtime.
type SyncConfigRequest struct {
	Provider  string `json:"provider" validate:"required,oneof=npoint jsonbin"`
	DocID     string `json:"doc_id" validate:"required"`
	AccessKey string `json:"access_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

// SyncConfigResponse reports the active remote endpoint. The access key is
// write-only and comes back masked.
type SyncConfigResponse struct {
	Provider  string `json:"provider"`
	DocID     string `json:"doc_id"`
	AccessKey string `json:"access_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}
