package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object key prefixes, one per upload category.
const (
	PrefixQuotes       = "quotes"
	PrefixContracts    = "contracts"
	PrefixAcceptance   = "acceptance"
	PrefixConstruction = "construction"
	PrefixDesigner     = "designer"
)

// BuildKey returns a collision-free object key for an owner's upload,
// preserving the original file extension.
func BuildKey(prefix, ownerID, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.New().String(), ext)
}

// OwnerPrefix returns the listing prefix for all of an owner's objects
// in a category.
func OwnerPrefix(prefix, ownerID string) string {
	return fmt.Sprintf("%s/%s/", prefix, ownerID)
}
