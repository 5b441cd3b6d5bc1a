package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLocal(t *testing.T) {
	assert.True(t, IsLocal("http://127.0.0.1:10002/devstoreaccount1"))
	assert.False(t, IsLocal("https://acct.table.core.windows.net"))
	assert.False(t, IsLocal(""))
}

func TestAzuriteCredentials(t *testing.T) {
	name, key := AzuriteCredentials()
	assert.Equal(t, "devstoreaccount1", name)
	assert.NotEmpty(t, key)
}
