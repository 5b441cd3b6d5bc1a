// Package azure holds the credential selection shared by the Azure-backed
// components: Azurite shared keys for local http endpoints, managed identity
// everywhere else.
package azure

import (
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	// Standard Azurite account name and key
	azuriteAccountName = "devstoreaccount1"
	azuriteAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// IsLocal checks if the service URL indicates a local emulator (plain http).
func IsLocal(serviceURL string) bool {
	return strings.HasPrefix(serviceURL, "http://")
}

// AzuriteCredentials returns the well-known Azurite account name and key.
func AzuriteCredentials() (string, string) {
	return azuriteAccountName, azuriteAccountKey
}

// NewDefaultCredential creates a DefaultAzureCredential.
func NewDefaultCredential() (azcore.TokenCredential, error) {
	slog.Info("using default Azure credentials")
	return azidentity.NewDefaultAzureCredential(nil)
}
