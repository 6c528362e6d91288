package model

// AccountInfo represents an Azure subscription identity
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// StorageAccount is a discovered Azure Storage account
type StorageAccount struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
	Kind           string
	Location       string
	SKU            string
	BlobEndpoint   string
	FileEndpoint   string
}
